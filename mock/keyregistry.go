package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.KeyRegistry = (*KeyRegistry)(nil)

// KeyRegistry is a mock implementation of sitechat.KeyRegistry.
type KeyRegistry struct {
	AddKeyFn     func(ctx context.Context, key *sitechat.APIKey) error
	KeysByUserFn func(ctx context.Context, userID string) ([]*sitechat.APIKey, error)
	RemoveKeyFn  func(ctx context.Context, userID, key string) error
}

func (r *KeyRegistry) AddKey(ctx context.Context, key *sitechat.APIKey) error {
	return r.AddKeyFn(ctx, key)
}

func (r *KeyRegistry) KeysByUser(ctx context.Context, userID string) ([]*sitechat.APIKey, error) {
	return r.KeysByUserFn(ctx, userID)
}

func (r *KeyRegistry) RemoveKey(ctx context.Context, userID, key string) error {
	return r.RemoveKeyFn(ctx, userID, key)
}
