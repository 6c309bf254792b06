package mock

import "github.com/fwojciec/sitechat"

var _ sitechat.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of sitechat.Limiter.
type Limiter struct {
	AllowFn func(identity string, op sitechat.Operation) bool
}

func (l *Limiter) Allow(identity string, op sitechat.Operation) bool {
	if l.AllowFn == nil {
		return true
	}
	return l.AllowFn(identity, op)
}
