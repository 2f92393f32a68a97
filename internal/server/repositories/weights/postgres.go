// Package weights provides a PostgreSQL-backed repository for weight
// entries.
package weights

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeightEntry, error) {
	query := `
		SELECT id, user_id, entry_date, weight_kg
		FROM weight_entries
		WHERE user_id = $1 AND entry_date = $2
	`
	entry := &models.WeightEntry{}
	err := r.db.QueryRowContext(ctx, query, userID, date).
		Scan(&entry.ID, &entry.UserID, &entry.EntryDate, &entry.WeightKg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.WeightEntry, error) {
	query := `
		SELECT id, user_id, entry_date, weight_kg
		FROM weight_entries
		WHERE user_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.WeightEntry, 0)
	for rows.Next() {
		entry := &models.WeightEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.EntryDate, &entry.WeightKg); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}

// Upsert inserts the entry or, when a row for (user, date) already
// exists, replaces its weight. Returns the stored row with its id.
func (r *PostgresRepository) Upsert(ctx context.Context, entry *models.WeightEntry) (*models.WeightEntry, error) {
	query := `
		INSERT INTO weight_entries (id, user_id, entry_date, weight_kg)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, entry.ID, entry.UserID, entry.EntryDate, entry.WeightKg).
		Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	query := `
		DELETE FROM weight_entries
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
