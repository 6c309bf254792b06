// Package goquery provides a plain paragraph-text extractor: it collects
// every <p> element from the page, ignoring document structure. This matches
// the simplest possible scraping behavior and works on pages where the
// article-detection heuristics find nothing.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitechat"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor collects paragraph elements from HTML using CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and the concatenation of all <p> elements.
func (e *Extractor) Extract(rawHTML string) (*sitechat.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	var sb strings.Builder
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			return
		}
		sb.WriteString(html)
		sb.WriteString("\n")
	})

	return &sitechat.ExtractResult{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		ContentHTML: sb.String(),
	}, nil
}
