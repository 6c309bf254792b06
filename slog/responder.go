package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitechat"
)

// Ensure LoggingResponder implements sitechat.Responder.
var _ sitechat.Responder = (*LoggingResponder)(nil)

// LoggingResponder wraps a Responder with per-exchange logging. Message
// content is not logged, only sizes and timing.
type LoggingResponder struct {
	next   sitechat.Responder
	logger *slog.Logger
}

// NewLoggingResponder creates a new LoggingResponder.
func NewLoggingResponder(next sitechat.Responder, logger *slog.Logger) *LoggingResponder {
	return &LoggingResponder{next: next, logger: logger}
}

// Respond logs the outcome of the exchange and delegates to the wrapped
// service.
func (r *LoggingResponder) Respond(ctx context.Context, key, input string) (response string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("chat",
			"key", key,
			"input_len", len(input),
			"response_len", len(response),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Respond(ctx, key, input)
}
