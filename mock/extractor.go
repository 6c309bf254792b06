package mock

import "github.com/fwojciec/sitechat"

var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitechat.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sitechat.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sitechat.ExtractResult, error) {
	return e.ExtractFn(html)
}
