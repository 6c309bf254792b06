package mem

import (
	"sync"
	"time"

	"github.com/fwojciec/sitechat"
)

// Ensure Limiter implements sitechat.Limiter at compile time.
var _ sitechat.Limiter = (*Limiter)(nil)

// DefaultGlobalQuotas returns the global per-identity ceilings applied to
// every operation: 200 requests per day and 100 per hour.
func DefaultGlobalQuotas() []sitechat.Quota {
	return []sitechat.Quota{
		{Name: "daily", Limit: 200, Interval: 24 * time.Hour},
		{Name: "hourly", Limit: 100, Interval: time.Hour},
	}
}

// DefaultOperationQuota returns the tighter short-window ceiling carried by
// protected operations: 5 requests per minute.
func DefaultOperationQuota() sitechat.Quota {
	return sitechat.Quota{Name: "burst", Limit: 5, Interval: time.Minute}
}

// window tracks admissions for one (identity, quota) pair within the
// current fixed-window cycle.
type window struct {
	start time.Time
	count int
}

// Limiter is a fixed-window sitechat.Limiter. Each identity gets a counter
// per quota; a counter resets once the quota's interval has elapsed since
// the window's first recorded request. A request is admitted only if every
// applicable window is under its ceiling, and admission increments all of
// them atomically.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	global  []sitechat.Quota
	perOp   map[sitechat.Operation]sitechat.Quota
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the limiter's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithGlobalQuotas overrides the global per-identity quotas.
func WithGlobalQuotas(quotas []sitechat.Quota) Option {
	return func(l *Limiter) {
		l.global = quotas
	}
}

// WithOperationQuota sets the short-window quota for a protected operation.
func WithOperationQuota(op sitechat.Operation, q sitechat.Quota) Option {
	return func(l *Limiter) {
		l.perOp[op] = q
	}
}

// NewLimiter creates a Limiter with the default quotas: 200/day and 100/hour
// globally, plus 5/minute for each protected operation.
func NewLimiter(opts ...Option) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		global:  DefaultGlobalQuotas(),
		perOp: map[sitechat.Operation]sitechat.Quota{
			sitechat.OpIngest: DefaultOperationQuota(),
			sitechat.OpChat:   DefaultOperationQuota(),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether a request from identity for op is admitted.
// A denied request consumes no quota in any window.
func (l *Limiter) Allow(identity string, op sitechat.Operation) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// Resolve every applicable window before incrementing anything, so a
	// denial leaves all counters untouched. Global windows are shared
	// across operations; the op window is scoped to the operation.
	var resolved []*window

	for _, q := range l.global {
		w, ok := l.resolve(identity+"|"+q.Name, q, now)
		if !ok {
			return false
		}
		resolved = append(resolved, w)
	}
	if q, ok := l.perOp[op]; ok {
		w, ok := l.resolve(identity+"|"+q.Name+"|"+string(op), q, now)
		if !ok {
			return false
		}
		resolved = append(resolved, w)
	}

	for _, w := range resolved {
		w.count++
	}
	return true
}

// resolve returns the current window for key, resetting it if its cycle has
// elapsed, and reports whether the window has capacity left.
func (l *Limiter) resolve(key string, q sitechat.Quota, now time.Time) (*window, bool) {
	w, ok := l.windows[key]
	if !ok {
		w = &window{start: now}
		l.windows[key] = w
	}
	if now.Sub(w.start) >= q.Interval {
		w.start = now
		w.count = 0
	}
	return w, w.count < q.Limit
}
