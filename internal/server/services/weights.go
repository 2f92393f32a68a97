package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Plausible human weight bounds, kilograms.
const (
	minWeightKg = 20
	maxWeightKg = 500
)

// WeightService manages per-day weight entries. Each user holds at most
// one entry per calendar date.
type WeightService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWeightService(db *sql.DB, m repomanager.RepositoryManager) *WeightService {
	return &WeightService{db: db, repomanager: m}
}

// GetByDate returns the user's entry for a date, or common.ErrorNotFound
// when nothing was recorded that day.
func (s *WeightService) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeightEntry, error) {
	return s.repomanager.Weights(s.db).GetByDate(ctx, userID, date)
}

// ListRange returns entries between start and end inclusive, ordered by
// date. A range whose end precedes its start is a validation error.
func (s *WeightService) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.WeightEntry, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date: %w", common.ErrorValidation)
	}
	return s.repomanager.Weights(s.db).ListRange(ctx, userID, start, end)
}

// Save records the user's weight for a date, replacing any earlier value
// for the same day.
func (s *WeightService) Save(ctx context.Context, userID uuid.UUID, date time.Time, weightKg float64) (*models.WeightEntry, error) {
	if weightKg < minWeightKg || weightKg > maxWeightKg {
		return nil, fmt.Errorf("weight must be between %d and %d kg: %w", minWeightKg, maxWeightKg, common.ErrorValidation)
	}

	entry := &models.WeightEntry{
		ID:        uuid.New(),
		UserID:    userID,
		EntryDate: date,
		WeightKg:  weightKg,
	}
	return s.repomanager.Weights(s.db).Upsert(ctx, entry)
}

// Delete removes the user's entry by id. Entries belonging to other
// users are indistinguishable from missing ones.
func (s *WeightService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.repomanager.Weights(s.db).Delete(ctx, userID, entryID)
}
