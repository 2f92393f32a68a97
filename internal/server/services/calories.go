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

// CalorieService manages calorie diary entries. Unlike weights, a user
// may record any number of entries per date.
type CalorieService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCalorieService(db *sql.DB, m repomanager.RepositoryManager) *CalorieService {
	return &CalorieService{db: db, repomanager: m}
}

// ListByDate returns the user's entries for a date in insertion order.
func (s *CalorieService) ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.CalorieEntry, error) {
	return s.repomanager.Calories(s.db).ListByDate(ctx, userID, date)
}

// ListRange returns entries between start and end inclusive, ordered by
// date then insertion. A range whose end precedes its start is a
// validation error.
func (s *CalorieService) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.CalorieEntry, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date: %w", common.ErrorValidation)
	}
	return s.repomanager.Calories(s.db).ListRange(ctx, userID, start, end)
}

// Create records a calorie entry. Optional text fields are trimmed and
// stored as NULL when blank.
func (s *CalorieService) Create(ctx context.Context, userID uuid.UUID, date time.Time, calories int, foodName, partOfDay, note *string) (*models.CalorieEntry, error) {
	if calories <= 0 {
		return nil, fmt.Errorf("calories must be positive: %w", common.ErrorValidation)
	}

	entry := &models.CalorieEntry{
		ID:        uuid.New(),
		UserID:    userID,
		EntryDate: date,
		Calories:  calories,
		FoodName:  common.NormalizeOptionalText(foodName),
		PartOfDay: common.NormalizeOptionalText(partOfDay),
		Note:      common.NormalizeOptionalText(note),
	}

	if err := s.repomanager.Calories(s.db).Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the user's entry by id. Entries belonging to other
// users are indistinguishable from missing ones.
func (s *CalorieService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.repomanager.Calories(s.db).Delete(ctx, userID, entryID)
}
