package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Responder = (*Responder)(nil)

// Responder is a mock implementation of sitechat.Responder.
type Responder struct {
	RespondFn func(ctx context.Context, key, input string) (string, error)
}

func (r *Responder) Respond(ctx context.Context, key, input string) (string, error) {
	return r.RespondFn(ctx, key, input)
}
