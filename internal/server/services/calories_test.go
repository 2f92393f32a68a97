package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/google/uuid"
)

func TestCalorieCreate_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeCaloriesRepo{}
	s := NewCalorieService(db, &fakeRepoManager{calories: repo})

	food := " Porridge "
	blank := "   "
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	entry, err := s.Create(context.Background(), uuid.New(), date, 350, &food, &blank, nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if entry.Calories != 350 {
		t.Errorf("unexpected calories %d", entry.Calories)
	}
	if entry.FoodName == nil || *entry.FoodName != "Porridge" {
		t.Errorf("food name not trimmed: %v", entry.FoodName)
	}
	if entry.PartOfDay != nil {
		t.Errorf("blank part of day should collapse to nil, got %q", *entry.PartOfDay)
	}
	if entry.Note != nil {
		t.Errorf("nil note should stay nil, got %q", *entry.Note)
	}
	if repo.created == nil {
		t.Error("entry was not stored")
	}
}

func TestCalorieCreate_NonPositiveCalories(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewCalorieService(db, &fakeRepoManager{calories: &fakeCaloriesRepo{}})
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	for _, calories := range []int{0, -100} {
		_, err := s.Create(context.Background(), uuid.New(), date, calories, nil, nil, nil)
		if !errors.Is(err, common.ErrorValidation) {
			t.Errorf("Create(%d): expected ErrorValidation, got %v", calories, err)
		}
	}
}

func TestCalorieListRange_EndBeforeStart(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewCalorieService(db, &fakeRepoManager{calories: &fakeCaloriesRepo{}})

	start := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := s.ListRange(context.Background(), uuid.New(), start, end)
	if !errors.Is(err, common.ErrorValidation) {
		t.Errorf("expected ErrorValidation, got %v", err)
	}
}

func TestCalorieDelete_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeCaloriesRepo{deleteErr: common.ErrorNotFound}
	s := NewCalorieService(db, &fakeRepoManager{calories: repo})

	err := s.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}
