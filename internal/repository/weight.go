package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weight-tracker-backend/internal/models"
)

// WeightRepository handles database operations for weight records
type WeightRepository struct {
	db *sql.DB
}

// NewWeightRepository creates a new weight record repository
func NewWeightRepository(db *sql.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

// Create inserts a new weight record and returns it with its generated ID.
func (r *WeightRepository) Create(ctx context.Context, record *models.WeightRecord) error {
	query := `
		INSERT INTO weight_records (user_id, weight, date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		record.UserID, record.Weight, record.Date.UnixNano(), record.CreatedAt.UnixNano(),
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to create weight record: %w", err)
	}
	return nil
}

// GetByID retrieves a weight record scoped to its owner. Returns nil if no
// such record belongs to the user.
func (r *WeightRepository) GetByID(ctx context.Context, userID, recordID int64) (*models.WeightRecord, error) {
	query := `
		SELECT id, user_id, weight, date, created_at
		FROM weight_records
		WHERE id = $1 AND user_id = $2
	`
	record, err := scanRecord(r.db.QueryRowContext(ctx, query, recordID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weight record: %w", err)
	}
	return record, nil
}

// ListSince retrieves a user's weight records dated on or after the cutoff,
// ascending by date. A zero cutoff imposes no lower bound.
func (r *WeightRepository) ListSince(ctx context.Context, userID int64, cutoff time.Time) ([]*models.WeightRecord, error) {
	query := `
		SELECT id, user_id, weight, date, created_at
		FROM weight_records
		WHERE user_id = $1 AND date >= $2
		ORDER BY date
	`
	var since int64
	if !cutoff.IsZero() {
		since = cutoff.UnixNano()
	} else {
		since = minTimestamp
	}

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight records: %w", err)
	}
	defer rows.Close()

	records := []*models.WeightRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weight record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weight records: %w", err)
	}

	return records, nil
}

// ExistsAtDate checks whether the user already has a record at the exact
// timestamp.
func (r *WeightRepository) ExistsAtDate(ctx context.Context, userID int64, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM weight_records WHERE user_id = $1 AND date = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, date.UnixNano()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check date existence: %w", err)
	}
	return exists, nil
}

// Update persists a record's weight and date.
func (r *WeightRepository) Update(ctx context.Context, record *models.WeightRecord) error {
	query := `UPDATE weight_records SET weight = $1, date = $2 WHERE id = $3 AND user_id = $4`
	_, err := r.db.ExecContext(ctx, query,
		record.Weight, record.Date.UnixNano(), record.ID, record.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update weight record: %w", err)
	}
	return nil
}

// Delete removes a record scoped to its owner. Returns whether it existed.
func (r *WeightRepository) Delete(ctx context.Context, userID, recordID int64) (bool, error) {
	query := `DELETE FROM weight_records WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, recordID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete weight record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// minTimestamp is the smallest stored timestamp value; used as the lower
// bound for unfiltered listings so every query shares one shape.
const minTimestamp = int64(-1 << 62)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.WeightRecord, error) {
	var (
		record          models.WeightRecord
		date, createdAt int64
	)
	if err := row.Scan(&record.ID, &record.UserID, &record.Weight, &date, &createdAt); err != nil {
		return nil, err
	}
	record.Date = time.Unix(0, date)
	record.CreatedAt = time.Unix(0, createdAt)
	return &record, nil
}
