package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/sma-adp-api/internal/models"
)

// BatchRepository handles persistence for student batches/cohorts.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository creates a new repository instance.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// List returns every batch, ordered by name.
func (r *BatchRepository) List(ctx context.Context) ([]models.Batch, error) {
	const query = `SELECT id, name, student_count, subject_ids, created_at, updated_at FROM batches ORDER BY name ASC`
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return batches, nil
}

// FindByID returns a batch by id.
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	const query = `SELECT id, name, student_count, subject_ids, created_at, updated_at FROM batches WHERE id = $1`
	var b models.Batch
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persists a new batch. SubjectIDs must already be valid JSON.
func (r *BatchRepository) Create(ctx context.Context, b *models.Batch) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.SubjectIDs == nil {
		b.SubjectIDs = types.JSONText("[]")
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	const query = `INSERT INTO batches (id, name, student_count, subject_ids, created_at, updated_at) VALUES (:id, :name, :student_count, :subject_ids, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// Update modifies a batch.
func (r *BatchRepository) Update(ctx context.Context, b *models.Batch) error {
	b.UpdatedAt = time.Now().UTC()
	const query = `UPDATE batches SET name = :name, student_count = :student_count, subject_ids = :subject_ids, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// Delete removes a batch record.
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM batches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// ListForScheduling returns every batch for use by the timetable generator;
// SubjectIDs is left as the raw JSON column.
func (r *BatchRepository) ListForScheduling(ctx context.Context) ([]models.Batch, error) {
	return r.List(ctx)
}

// CountUsingSubject returns how many batches list the given subject in their
// subject membership.
func (r *BatchRepository) CountUsingSubject(ctx context.Context, subjectID string) (int, error) {
	const query = `SELECT COUNT(*) FROM batches WHERE subject_ids::jsonb @> to_jsonb($1::text)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, subjectID); err != nil {
		return 0, fmt.Errorf("count batches using subject: %w", err)
	}
	return count, nil
}
