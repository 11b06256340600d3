package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Batch represents a cohort of students that shares a subject list; sessions
// of subjects taken by the same batch must never share a timetable slot.
type Batch struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	StudentCount int            `db:"student_count" json:"student_count"`
	SubjectIDs   types.JSONText `db:"subject_ids" json:"subject_ids"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// BatchFilter captures supported filters for listing batches.
type BatchFilter struct {
	Search   string
	Page     int
	PageSize int
}
