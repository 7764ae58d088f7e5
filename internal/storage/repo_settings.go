package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Well-known settings keys. Each value is independently and idempotently
// settable; there is one logical writer per key.
const (
	KeyTheme        = "theme"
	KeyUserProfile  = "user_profile"
	KeyLastRange    = "records_last_range"
	KeyLastFilters  = "records_last_filters"
	KeyLastPageSize = "records_last_page_size"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	return r.UpsertMany(ctx, map[string]string{key: value})
}

func (r *SettingsRepo) UpsertMany(ctx context.Context, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings upsert transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for key, value := range values {
		if _, err = tx.ExecContext(
			ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key,
			value,
			now,
		); err != nil {
			return fmt.Errorf("upsert setting %q: %w", key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit settings upsert transaction: %w", err)
	}
	return nil
}

// ClearAll empties the settings and avatar cache; used on logout so nothing
// of the previous session's profile survives locally.
func (r *SettingsRepo) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM settings"); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM avatar_cache"); err != nil {
		return fmt.Errorf("clear avatar cache: %w", err)
	}
	return nil
}
