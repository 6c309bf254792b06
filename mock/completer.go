package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Completer = (*Completer)(nil)

// Completer is a mock implementation of sitechat.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt sitechat.Prompt) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt sitechat.Prompt) (string, error) {
	return c.CompleteFn(ctx, prompt)
}
