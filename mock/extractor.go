package mock

import "github.com/mzawadzki/ordpipe"

var _ ordpipe.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor is a mock implementation of ordpipe.SectionExtractor.
type SectionExtractor struct {
	ExtractFn func(html, url string) (*ordpipe.PageSection, error)
}

func (e *SectionExtractor) Extract(html, url string) (*ordpipe.PageSection, error) {
	return e.ExtractFn(html, url)
}
