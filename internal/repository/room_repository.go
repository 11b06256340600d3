package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-adp-api/internal/models"
)

// RoomRepository handles persistence for teaching rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new repository instance.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns every room, ordered by name.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, name, capacity, room_type, created_at, updated_at FROM rooms ORDER BY name ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// FindByID returns a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	const query = `SELECT id, name, capacity, room_type, created_at, updated_at FROM rooms WHERE id = $1`
	var rm models.Room
	if err := r.db.GetContext(ctx, &rm, query, id); err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create persists a new room.
func (r *RoomRepository) Create(ctx context.Context, rm *models.Room) error {
	if rm.ID == "" {
		rm.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rm.CreatedAt.IsZero() {
		rm.CreatedAt = now
	}
	rm.UpdatedAt = now

	const query = `INSERT INTO rooms (id, name, capacity, room_type, created_at, updated_at) VALUES (:id, :name, :capacity, :room_type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rm); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update modifies a room.
func (r *RoomRepository) Update(ctx context.Context, rm *models.Room) error {
	rm.UpdatedAt = time.Now().UTC()
	const query = `UPDATE rooms SET name = :name, capacity = :capacity, room_type = :room_type, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, rm); err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// Delete removes a room record.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
