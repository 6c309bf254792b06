package sitechat

import (
	"context"
	"time"
)

// Operation identifies a protected endpoint for rate limiting purposes.
// Protected operations carry a tighter short-window ceiling on top of the
// global per-identity quotas.
type Operation string

// Protected operations.
const (
	OpIngest Operation = "ingest"
	OpChat   Operation = "chat"
)

// Quota is a fixed-window ceiling: at most Limit admissions per Interval.
// The window starts at the first admitted request and resets once Interval
// has elapsed, rather than sliding continuously.
type Quota struct {
	Name     string
	Limit    int
	Interval time.Duration
}

// Limiter admits or rejects requests per client identity.
// A denial is an ordinary return value, never an error, and a denied
// request must not consume quota in any window.
type Limiter interface {
	// Allow reports whether a request from identity for op is admitted
	// under all applicable quotas, atomically consuming quota when it is.
	// Allow never blocks.
	Allow(identity string, op Operation) bool
}

// DomainLimiter throttles outbound requests per target domain so that a
// burst of ingestions cannot hammer a single site.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}
