package services

import (
	"context"
	"fmt"
	"time"

	"weight-tracker-backend/internal/models"
	"weight-tracker-backend/internal/repository"

	"github.com/araddon/dateparse"
)

// WeightService handles weight-record business logic
type WeightService struct {
	userRepo   *repository.UserRepository
	weightRepo *repository.WeightRepository
}

// NewWeightService creates a new weight record service
func NewWeightService(userRepo *repository.UserRepository, weightRepo *repository.WeightRepository) *WeightService {
	return &WeightService{
		userRepo:   userRepo,
		weightRepo: weightRepo,
	}
}

// ListRecords returns a user's weight records ascending by date, filtered by
// timeRange ("week", "month", "year"; anything else means no lower bound).
func (s *WeightService) ListRecords(ctx context.Context, userID int64, timeRange string) ([]*models.WeightRecord, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.weightRepo.ListSince(ctx, userID, rangeCutoff(timeRange, time.Now()))
}

// AddRecord validates and stores a new measurement. The weight must be
// present and strictly positive; the date must be present and parseable. A
// record already occupying the exact (user, date) timestamp is rejected.
// The check-then-insert is not guarded against concurrent requests; the two
// could race and both commit.
func (s *WeightService) AddRecord(ctx context.Context, userID int64, weight *float64, dateStr string) (*models.WeightRecord, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if weight == nil || *weight <= 0 {
		return nil, validationErr("invalid weight")
	}
	if dateStr == "" {
		return nil, validationErr("date is required")
	}
	date, err := dateparse.ParseAny(dateStr)
	if err != nil {
		return nil, validationErr("invalid date format")
	}

	exists, err := s.weightRepo.ExistsAtDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check date: %w", err)
	}
	if exists {
		return nil, duplicateErr("a weight record already exists at this date")
	}

	record := &models.WeightRecord{
		UserID:    userID,
		Weight:    *weight,
		Date:      date,
		CreatedAt: time.Now(),
	}
	if err := s.weightRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateRecord mutates only the provided fields of a record owned by the
// user; each provided field is validated independently.
func (s *WeightService) UpdateRecord(ctx context.Context, userID, recordID int64, weight *float64, dateStr *string) (*models.WeightRecord, error) {
	record, err := s.weightRepo.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, notFoundErr("record not found")
	}

	if weight != nil {
		if *weight <= 0 {
			return nil, validationErr("invalid weight")
		}
		record.Weight = *weight
	}

	if dateStr != nil && *dateStr != "" {
		date, err := dateparse.ParseAny(*dateStr)
		if err != nil {
			return nil, validationErr("invalid date format")
		}
		record.Date = date
	}

	if err := s.weightRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteRecord removes a record owned by the user.
func (s *WeightService) DeleteRecord(ctx context.Context, userID, recordID int64) error {
	found, err := s.weightRepo.Delete(ctx, userID, recordID)
	if err != nil {
		return err
	}
	if !found {
		return notFoundErr("record not found")
	}
	return nil
}

func (s *WeightService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFoundErr("user not found")
	}
	return nil
}

// rangeCutoff returns the inclusive lower bound for a time range, anchored
// at the current calendar date's midnight. The zero time means no bound.
func rangeCutoff(timeRange string, now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch timeRange {
	case "week":
		return midnight.AddDate(0, 0, -7)
	case "month":
		return midnight.AddDate(0, 0, -30)
	case "year":
		return midnight.AddDate(0, 0, -365)
	default:
		return time.Time{}
	}
}
