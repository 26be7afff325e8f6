package rod

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/mzawadzki/ordpipe"
)

// Ensure LoggingFetcher implements ordpipe.Fetcher.
var _ ordpipe.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-page logging. Every target URL
// carries its anchor identifier as the nodeId query parameter, so the
// decorator surfaces it as its own attribute for correlating log lines with
// catalog entries.
type LoggingFetcher struct {
	next   ordpipe.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next ordpipe.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the page being fetched, its anchor identifier, and the outcome,
// then delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, pageURL string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", pageURL,
			"nodeId", queryNodeID(pageURL),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, pageURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// queryNodeID extracts the nodeId query parameter for logging. Malformed
// URLs yield an empty attribute rather than an error.
func queryNodeID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("nodeId")
}
