package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Ingestor = (*Ingestor)(nil)

// Ingestor is a mock implementation of sitechat.Ingestor.
type Ingestor struct {
	IngestFn func(ctx context.Context, userID, url string) (*sitechat.Ingestion, error)
}

func (i *Ingestor) Ingest(ctx context.Context, userID, url string) (*sitechat.Ingestion, error) {
	return i.IngestFn(ctx, userID, url)
}
