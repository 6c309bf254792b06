package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/sitechat"
)

// Compile-time interface verification.
var _ sitechat.KeyRegistry = (*KeyRegistry)(nil)

// KeyRegistry implements sitechat.KeyRegistry using SQLite.
type KeyRegistry struct {
	db *DB
}

// NewKeyRegistry creates a new KeyRegistry.
func NewKeyRegistry(db *DB) *KeyRegistry {
	return &KeyRegistry{db: db}
}

// AddKey records a newly issued key for a user.
func (r *KeyRegistry) AddKey(ctx context.Context, key *sitechat.APIKey) error {
	if err := key.Validate(); err != nil {
		return err
	}

	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_keys (key, user_id, source_url, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, key.Key, key.UserID, key.SourceURL, key.ContentHash,
		key.CreatedAt.Format(time.RFC3339))

	return err
}

// KeysByUser retrieves all keys owned by a user, newest first.
func (r *KeyRegistry) KeysByUser(ctx context.Context, userID string) ([]*sitechat.APIKey, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, user_id, source_url, content_hash, created_at
		FROM api_keys
		WHERE user_id = ?
		ORDER BY created_at DESC, key
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*sitechat.APIKey
	for rows.Next() {
		var key sitechat.APIKey
		var createdAt string

		if err := rows.Scan(&key.Key, &key.UserID, &key.SourceURL, &key.ContentHash, &createdAt); err != nil {
			return nil, err
		}

		key.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		keys = append(keys, &key)
	}

	return keys, rows.Err()
}

// RemoveKey deletes a key owned by the given user.
func (r *KeyRegistry) RemoveKey(ctx context.Context, userID, key string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM api_keys WHERE user_id = ? AND key = ?
	`, userID, key)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sitechat.Errorf(sitechat.ENOTFOUND, "API key not found")
	}

	return nil
}
