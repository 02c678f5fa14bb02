package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weight-tracker-backend/internal/models"
)

// PhotoRepository handles database operations for photos
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create inserts a new photo and returns it with its generated ID.
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (user_id, image_path, date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		photo.UserID, photo.ImagePath, photo.Date.UnixNano(), photo.CreatedAt.UnixNano(),
	).Scan(&photo.ID)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// GetByID retrieves a photo by ID. Returns nil if the photo does not exist.
func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	query := `
		SELECT id, user_id, image_path, date, created_at
		FROM photos
		WHERE id = $1
	`
	var (
		photo           models.Photo
		date, createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&photo.ID, &photo.UserID, &photo.ImagePath, &date, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	photo.Date = time.Unix(0, date)
	photo.CreatedAt = time.Unix(0, createdAt)
	return &photo, nil
}

// ListByUser retrieves a user's photos, most recently uploaded first.
func (r *PhotoRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Photo, error) {
	query := `
		SELECT id, user_id, image_path, date, created_at
		FROM photos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	photos := []*models.Photo{}
	for rows.Next() {
		var (
			photo           models.Photo
			date, createdAt int64
		)
		if err := rows.Scan(&photo.ID, &photo.UserID, &photo.ImagePath, &date, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photo.Date = time.Unix(0, date)
		photo.CreatedAt = time.Unix(0, createdAt)
		photos = append(photos, &photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}

	return photos, nil
}

// Delete removes a photo row and returns its image path so the caller can
// remove the backing file. Returns "" and false if the photo did not exist.
func (r *PhotoRepository) Delete(ctx context.Context, id int64) (string, bool, error) {
	query := `DELETE FROM photos WHERE id = $1 RETURNING image_path`
	var imagePath string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&imagePath)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to delete photo: %w", err)
	}
	return imagePath, true, nil
}
