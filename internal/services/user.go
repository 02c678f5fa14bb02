package services

import (
	"context"
	"fmt"
	"time"

	"weight-tracker-backend/internal/blob"
	"weight-tracker-backend/internal/models"
	"weight-tracker-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// UserService handles user-related business logic
type UserService struct {
	userRepo *repository.UserRepository
	blobs    blob.Store
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, blobs blob.Store) *UserService {
	return &UserService{
		userRepo: userRepo,
		blobs:    blobs,
	}
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// CreateUser creates a new user with a unique name.
func (s *UserService) CreateUser(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, validationErr("name is required")
	}

	exists, err := s.userRepo.NameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name: %w", err)
	}
	if exists {
		return nil, duplicateErr("name already exists")
	}

	return s.userRepo.Create(ctx, name, time.Now())
}

// DeleteUser deletes a user together with all owned weight records and
// photos. Photo files are removed after the database delete commits;
// removal failures are logged and swallowed since the database is the
// source of truth.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	paths, found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return notFoundErr("user not found")
	}

	for _, path := range paths {
		if err := s.blobs.Remove(ctx, path); err != nil {
			log.Warn().
				Err(err).
				Int64("user_id", id).
				Str("image_path", path).
				Msg("Failed to remove photo file")
		}
	}
	return nil
}
