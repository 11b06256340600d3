package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-adp-api/internal/models"
)

// TeacherAssignmentRepository persists teacher-subject eligibility assignments.
type TeacherAssignmentRepository struct {
	db *sqlx.DB
}

// NewTeacherAssignmentRepository constructs the repository.
func NewTeacherAssignmentRepository(db *sqlx.DB) *TeacherAssignmentRepository {
	return &TeacherAssignmentRepository{db: db}
}

// ListByTeacher returns assignments owned by teacher.
func (r *TeacherAssignmentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignmentDetail, error) {
	const query = `
SELECT ta.id, ta.teacher_id, ta.subject_id, ta.created_at,
       s.name AS subject_name, tr.full_name AS teacher_name
FROM teacher_assignments ta
JOIN subjects s ON s.id = ta.subject_id
JOIN teachers tr ON tr.id = ta.teacher_id
WHERE ta.teacher_id = $1
ORDER BY s.name ASC`
	var assignments []models.TeacherAssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	return assignments, nil
}

// ListForScheduling returns every assignment for use by the timetable
// generator, which needs the full teacher-subject eligibility graph at once
// rather than scoped to a single teacher.
func (r *TeacherAssignmentRepository) ListForScheduling(ctx context.Context) ([]models.TeacherAssignment, error) {
	const query = `SELECT id, teacher_id, subject_id, created_at FROM teacher_assignments`
	var assignments []models.TeacherAssignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list teacher assignments for scheduling: %w", err)
	}
	return assignments, nil
}

// Exists checks if the teacher-subject tuple already exists.
func (r *TeacherAssignmentRepository) Exists(ctx context.Context, teacherID, subjectID string) (bool, error) {
	const query = `SELECT 1 FROM teacher_assignments WHERE teacher_id = $1 AND subject_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, teacherID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher assignment: %w", err)
	}
	return true, nil
}

// Create inserts a new assignment.
func (r *TeacherAssignmentRepository) Create(ctx context.Context, assignment *models.TeacherAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	const query = `INSERT INTO teacher_assignments (id, teacher_id, subject_id, created_at)
		VALUES (:id, :teacher_id, :subject_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create teacher assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment verifying ownership.
func (r *TeacherAssignmentRepository) Delete(ctx context.Context, teacherID, assignmentID string) error {
	const query = `DELETE FROM teacher_assignments WHERE id = $1 AND teacher_id = $2`
	result, err := r.db.ExecContext(ctx, query, assignmentID, teacherID)
	if err != nil {
		return fmt.Errorf("delete teacher assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByTeacher returns the number of subjects a teacher is assigned to.
func (r *TeacherAssignmentRepository) CountByTeacher(ctx context.Context, teacherID string) (int, error) {
	const query = `SELECT COUNT(*) FROM teacher_assignments WHERE teacher_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, teacherID); err != nil {
		return 0, fmt.Errorf("count teacher assignments: %w", err)
	}
	return count, nil
}
