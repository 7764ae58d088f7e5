package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CachedAvatar is a previously fetched profile image, kept locally so the
// profile screen renders without hitting the picture URL on every launch.
type CachedAvatar struct {
	UserID      string
	ContentType string
	Data        []byte
	FetchedAt   time.Time
}

type AvatarRepo struct {
	db *sql.DB
}

func NewAvatarRepo(db *sql.DB) *AvatarRepo {
	return &AvatarRepo{db: db}
}

func (r *AvatarRepo) Get(ctx context.Context, userID string) (*CachedAvatar, error) {
	var (
		avatar    CachedAvatar
		fetchedAt string
	)
	err := r.db.QueryRowContext(
		ctx,
		"SELECT user_id, content_type, data, fetched_at FROM avatar_cache WHERE user_id = ?",
		userID,
	).Scan(&avatar.UserID, &avatar.ContentType, &avatar.Data, &fetchedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached avatar for user %q: %w", userID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
		avatar.FetchedAt = t
	}
	return &avatar, nil
}

func (r *AvatarRepo) Put(ctx context.Context, avatar CachedAvatar) error {
	fetchedAt := avatar.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO avatar_cache (user_id, content_type, data, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET content_type = excluded.content_type, data = excluded.data, fetched_at = excluded.fetched_at`,
		avatar.UserID,
		avatar.ContentType,
		avatar.Data,
		fetchedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("cache avatar for user %q: %w", avatar.UserID, err)
	}
	return nil
}

func (r *AvatarRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM avatar_cache WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete cached avatar for user %q: %w", userID, err)
	}
	return nil
}
