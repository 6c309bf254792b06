package sitechat

import "context"

// Ingestion is the outcome of successfully ingesting a URL: a freshly
// issued context key plus metadata about the stored content.
type Ingestion struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	SourceURL   string `json:"sourceUrl"`
	ContentHash string `json:"contentHash"`
}

// Ingestor turns a URL into a stored context entry and a registered key.
type Ingestor interface {
	// Ingest fetches url, extracts its main content, stores it under a
	// new context key and registers the key for userID.
	// Returns EINVALID for a missing or malformed URL and EUNAVAILABLE
	// when the page cannot be fetched.
	Ingest(ctx context.Context, userID, url string) (*Ingestion, error)
}
