package sitechat

import (
	"context"
	"time"
)

// APIKey records ownership of a context key along with ingestion metadata.
// The registry is the source of truth for which keys belong to whom; the
// ContextStore is the source of truth for what text a key resolves to. The
// two are not transactionally coupled, so a registered key may outlive its
// context entry (e.g. across a process restart).
type APIKey struct {
	Key         string    `json:"key"`
	UserID      string    `json:"userId"`
	SourceURL   string    `json:"sourceUrl"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the key record contains invalid fields.
func (k *APIKey) Validate() error {
	if k.Key == "" {
		return Errorf(EINVALID, "api key required")
	}
	if k.UserID == "" {
		return Errorf(EINVALID, "api key user ID required")
	}
	return nil
}

// KeyRegistry persists the association between users and their context keys.
type KeyRegistry interface {
	// AddKey records a newly issued key for a user.
	AddKey(ctx context.Context, key *APIKey) error

	// KeysByUser retrieves all keys owned by a user, newest first.
	KeysByUser(ctx context.Context, userID string) ([]*APIKey, error)

	// RemoveKey deletes a key owned by the given user.
	// Returns ENOTFOUND if the user does not own such a key.
	RemoveKey(ctx context.Context, userID, key string) error
}
