// Package ingest orchestrates the ingestion pipeline: fetch a page, extract
// its main content, convert it to markdown, store it under a fresh context
// key and register the key for the requesting user.
package ingest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitechat"
)

// Ensure Ingestor implements sitechat.Ingestor at compile time.
var _ sitechat.Ingestor = (*Ingestor)(nil)

// Ingestor coordinates fetching, extraction and key issuance.
//
// The registry write happens after the context store write. If it fails the
// store entry is orphaned; that inconsistency is accepted since store
// contents only live for the process lifetime anyway.
type Ingestor struct {
	Fetcher   sitechat.Fetcher
	Extractor sitechat.Extractor
	Converter sitechat.Converter
	Contexts  sitechat.ContextStore
	Registry  sitechat.KeyRegistry

	// RateLimiter, if set, spaces out outbound requests per target domain.
	RateLimiter sitechat.DomainLimiter

	// RetryDelays configures fetch retry backoff. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logf, if set, receives retry diagnostics.
	Logf LogFunc
}

// Ingest fetches rawURL, extracts its content and issues a context key for userID.
func (ing *Ingestor) Ingest(ctx context.Context, userID, rawURL string) (*sitechat.Ingestion, error) {
	if userID == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "user ID required")
	}
	if rawURL == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "No URL provided")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid URL %q", rawURL)
	}

	if ing.RateLimiter != nil {
		if err := ing.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			return nil, err
		}
	}

	delays := ing.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, rawURL, ing.Fetcher.Fetch, ing.Logf, delays)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EUNAVAILABLE, "failed to fetch %s: %v", rawURL, err)
	}

	result, err := ing.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extracting content from %s: %w", rawURL, err)
	}

	text, err := ing.Converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("converting content from %s: %w", rawURL, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "no content extracted from %s", rawURL)
	}

	key := ing.Contexts.Put(text)
	hash := fmt.Sprintf("%016x", xxhash.Sum64String(text))

	if err := ing.Registry.AddKey(ctx, &sitechat.APIKey{
		Key:         key,
		UserID:      userID,
		SourceURL:   rawURL,
		ContentHash: hash,
	}); err != nil {
		return nil, fmt.Errorf("registering key %s: %w", key, err)
	}

	return &sitechat.Ingestion{
		Key:         key,
		Title:       result.Title,
		SourceURL:   rawURL,
		ContentHash: hash,
	}, nil
}
