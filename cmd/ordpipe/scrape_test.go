package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/mzawadzki/ordpipe"
	main "github.com/mzawadzki/ordpipe/cmd/ordpipe"
	"github.com/mzawadzki/ordpipe/mock"
	"github.com/mzawadzki/ordpipe/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs orchestrator and reports totals", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<html><body><p>Sec. 18-1. Content.</p></body></html>", nil
			},
			CloseFn: func() error { return nil },
		}
		extractor := &mock.SectionExtractor{
			ExtractFn: func(_, url string) (*ordpipe.PageSection, error) {
				return &ordpipe.PageSection{
					Title:   "Chapter 18 ANIMALS",
					Content: "Sec. 18-1. Dogs must be kept on a leash.",
				}, nil
			},
		}
		var written *ordpipe.ScrapeResult
		writer := &mock.RecordWriter{
			WriteRecordsFn: func(_ context.Context, result *ordpipe.ScrapeResult) error {
				written = result
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Scraper: &scrape.Orchestrator{
				Fetcher:   fetcher,
				Extractor: extractor,
				Records:   writer,
				Config:    scrape.Config{Delay: time.Millisecond},
			},
		}

		cmd := &main.ScrapeCmd{Output: "out"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, written)
		assert.NotEmpty(t, written.Records)
		assert.Contains(t, stdout.String(), "Scraped")
		assert.Contains(t, stdout.String(), "Outputs written to out")
	})
}
