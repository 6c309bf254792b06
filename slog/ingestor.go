// Package slog provides logging decorators for sitechat services, built on
// the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitechat"
)

// Ensure LoggingIngestor implements sitechat.Ingestor.
var _ sitechat.Ingestor = (*LoggingIngestor)(nil)

// LoggingIngestor wraps an Ingestor with per-ingestion logging.
type LoggingIngestor struct {
	next   sitechat.Ingestor
	logger *slog.Logger
}

// NewLoggingIngestor creates a new LoggingIngestor.
func NewLoggingIngestor(next sitechat.Ingestor, logger *slog.Logger) *LoggingIngestor {
	return &LoggingIngestor{next: next, logger: logger}
}

// Ingest logs the outcome of the ingestion and delegates to the wrapped
// service.
func (i *LoggingIngestor) Ingest(ctx context.Context, userID, url string) (ing *sitechat.Ingestion, err error) {
	defer func(begin time.Time) {
		key := ""
		if ing != nil {
			key = ing.Key
		}
		i.logger.Info("ingest",
			"user", userID,
			"url", url,
			"key", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Ingest(ctx, userID, url)
}
