package models

import "time"

// Room represents a physical teaching space available to the scheduler.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	RoomType  *string   `db:"room_type" json:"room_type,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures supported filters for listing rooms.
type RoomFilter struct {
	RoomType string
	Search   string
	Page     int
	PageSize int
}
