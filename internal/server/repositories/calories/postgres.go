// Package calories provides a PostgreSQL-backed repository for calorie
// entries.
package calories

import (
	"context"
	"fmt"
	"time"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/dbx"
	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.CalorieEntry, error) {
	query := `
		SELECT id, user_id, entry_date, calories, food_name, part_of_day, note
		FROM calorie_entries
		WHERE user_id = $1 AND entry_date = $2
		ORDER BY created_at, id
	`
	return r.list(ctx, query, userID, date)
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.CalorieEntry, error) {
	query := `
		SELECT id, user_id, entry_date, calories, food_name, part_of_day, note
		FROM calorie_entries
		WHERE user_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date, created_at, id
	`
	return r.list(ctx, query, userID, start, end)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.CalorieEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.CalorieEntry, 0)
	for rows.Next() {
		entry := &models.CalorieEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.EntryDate, &entry.Calories,
			&entry.FoodName, &entry.PartOfDay, &entry.Note); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.CalorieEntry) error {
	query := `
		INSERT INTO calorie_entries (id, user_id, entry_date, calories, food_name, part_of_day, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.EntryDate, entry.Calories,
		entry.FoodName, entry.PartOfDay, entry.Note)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	query := `
		DELETE FROM calorie_entries
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, entryID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
