package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"weight-tracker-backend/internal/blob"
	"weight-tracker-backend/internal/models"
	"weight-tracker-backend/internal/repository"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PhotoService handles photo-related business logic
type PhotoService struct {
	userRepo  *repository.UserRepository
	photoRepo *repository.PhotoRepository
	blobs     blob.Store
}

// NewPhotoService creates a new photo service
func NewPhotoService(userRepo *repository.UserRepository, photoRepo *repository.PhotoRepository, blobs blob.Store) *PhotoService {
	return &PhotoService{
		userRepo:  userRepo,
		photoRepo: photoRepo,
		blobs:     blobs,
	}
}

// Upload stores the photo bytes in the blob store and then commits the
// database record, so that a committed record never references a missing
// file. The steps are not atomic: a crash in between leaves an orphaned
// file at worst.
func (s *PhotoService) Upload(ctx context.Context, userID int64, data []byte, originalName, dateStr string) (*models.Photo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundErr("user not found")
	}
	if originalName == "" {
		return nil, validationErr("no file selected")
	}
	if dateStr == "" {
		return nil, validationErr("date is required")
	}
	date, err := dateparse.ParseAny(dateStr)
	if err != nil {
		return nil, validationErr("invalid date format")
	}

	filename := generateFilename(userID, originalName)
	if err := s.blobs.Save(ctx, filename, data); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	photo := &models.Photo{
		UserID:    userID,
		ImagePath: filename,
		Date:      date,
		CreatedAt: time.Now(),
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// Keep the blob store tidy; the record is the source of truth.
		if rmErr := s.blobs.Remove(ctx, filename); rmErr != nil {
			log.Warn().Err(rmErr).Str("image_path", filename).Msg("Failed to remove orphaned photo file")
		}
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns a user's photos, most recently uploaded first, each
// annotated with its access URL.
func (s *PhotoService) ListPhotos(ctx context.Context, userID int64) ([]*models.Photo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundErr("user not found")
	}

	photos, err := s.photoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, photo := range photos {
		photo.ImageURL = fmt.Sprintf("/api/photos/%d", photo.ID)
	}
	return photos, nil
}

// GetPhoto returns a photo record together with its stored bytes.
func (s *PhotoService) GetPhoto(ctx context.Context, photoID int64) (*models.Photo, []byte, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}
	if photo == nil {
		return nil, nil, notFoundErr("photo not found")
	}

	data, err := s.blobs.Load(ctx, photo.ImagePath)
	if err == blob.ErrNotExist {
		return nil, nil, notFoundErr("photo not found")
	}
	if err != nil {
		return nil, nil, err
	}
	return photo, data, nil
}

// DeletePhoto removes the database record first, so the photo is immediately
// unlistable, then best-effort removes the backing file. A missing file is
// not an error.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID int64) error {
	imagePath, found, err := s.photoRepo.Delete(ctx, photoID)
	if err != nil {
		return err
	}
	if !found {
		return notFoundErr("photo not found")
	}

	if err := s.blobs.Remove(ctx, imagePath); err != nil {
		log.Warn().
			Err(err).
			Int64("photo_id", photoID).
			Str("image_path", imagePath).
			Msg("Failed to remove photo file")
	}
	return nil
}

// generateFilename derives a unique on-disk name from the user id and
// current time, keeping the original extension. The uuid fragment avoids
// collisions between uploads landing within the same second.
func generateFilename(userID int64, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("user%d_%d_%s%s", userID, time.Now().Unix(), uuid.NewString()[:8], ext)
}
