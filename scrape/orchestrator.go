package scrape

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/mzawadzki/ordpipe"
	"golang.org/x/time/rate"
)

// DefaultDelay is the pause enforced between page requests, regardless of
// outcome, to respect the origin server.
const DefaultDelay = 3 * time.Second

var (
	chapterNumRe = regexp.MustCompile(`Chapter\s+(\d+)`)
	titleNumRe   = regexp.MustCompile(`TITLE\s+(\d+)`)
)

// Config holds constructor-time configuration for the orchestrator.
type Config struct {
	// BaseURL is the landing page anchor identifiers are appended to.
	// Defaults to DefaultBaseURL.
	BaseURL string

	// Delay is the inter-request pause. Defaults to DefaultDelay.
	Delay time.Duration

	// RetryCount is the per-URL retry budget. It is declared for operators
	// that wrap the fetcher with retry behavior; the per-URL loop itself
	// does not consult it.
	RetryCount int

	// Municipality recorded on every ordinance.
	// Defaults to ordpipe.DefaultMunicipality.
	Municipality string
}

// target is one URL scheduled for a run.
type target struct {
	url     string
	chapter string
	nodeID  string
}

// Orchestrator sequences fetch, extract, record, and persist for every
// target URL of a scrape run. All accumulated state lives in the run's
// result value, so a single Orchestrator can serve multiple runs.
type Orchestrator struct {
	Fetcher   ordpipe.Fetcher
	Extractor ordpipe.SectionExtractor

	// Records, if set, persists the result at the end of the run.
	Records ordpipe.RecordWriter

	Logger *slog.Logger
	Config

	// Now returns the capture timestamp; overridable in tests.
	Now func() time.Time
}

// Run scrapes the catalog plus all speculatively discovered children and
// returns the accumulated records and failed URLs. Candidate URLs are not
// deduplicated: overlapping discovery is acceptable because empty-content
// results are simply dropped. A page that fails to fetch or yields no
// content is appended to the failure list and never aborts the run.
func (o *Orchestrator) Run(ctx context.Context, catalog []ordpipe.ChapterRef) (*ordpipe.ScrapeResult, error) {
	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	delay := o.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	municipality := o.Municipality
	if municipality == "" {
		municipality = ordpipe.DefaultMunicipality
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var targets []target
	for _, chapter := range catalog {
		targets = append(targets, target{
			url:     baseURL + "?nodeId=" + chapter.NodeID,
			chapter: chapter.Label,
			nodeID:  chapter.NodeID,
		})
		for _, childID := range Discover(chapter.NodeID) {
			targets = append(targets, target{
				url:     baseURL + "?nodeId=" + childID,
				chapter: chapter.Label + " - Related",
				nodeID:  childID,
			})
		}
	}
	logger.Info("scrape run starting", "targets", len(targets))

	limiter := rate.NewLimiter(rate.Every(delay), 1)

	result := &ordpipe.ScrapeResult{}
	for i, tgt := range targets {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		logger.Info("processing target",
			"progress", i+1,
			"total", len(targets),
			"chapter", tgt.chapter,
		)

		section, err := o.extractPage(ctx, tgt.url)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logger.Error("page extraction failed", "url", tgt.url, "err", err)
			result.FailedURLs = append(result.FailedURLs, tgt.url)
			continue
		}
		if section.Content == "" {
			logger.Warn("no content found", "url", tgt.url)
			result.FailedURLs = append(result.FailedURLs, tgt.url)
			continue
		}

		result.Records = append(result.Records, &ordpipe.OrdinanceRecord{
			Chapter:       tgt.chapter,
			ChapterNumber: ChapterNumber(tgt.chapter),
			SectionID:     tgt.nodeID,
			Title:         section.Title,
			Content:       section.Content,
			URL:           tgt.url,
			NodeID:        tgt.nodeID,
			Subsections:   section.Subsections,
			Municipality:  municipality,
			ScrapedAt:     now().UTC(),
		})
		logger.Info("scraped", "chapter", tgt.chapter, "url", tgt.url)
	}

	logger.Info("scrape run completed",
		"records", len(result.Records),
		"failed", len(result.FailedURLs),
	)

	if o.Records != nil {
		if err := o.Records.WriteRecords(ctx, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// extractPage fetches and extracts a single URL.
func (o *Orchestrator) extractPage(ctx context.Context, url string) (*ordpipe.PageSection, error) {
	html, err := o.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return o.Extractor.Extract(html, url)
}

// ChapterNumber derives the short chapter code from a catalog label:
// "Chapter 18 - ANIMALS" yields "18", "TITLE 1 - ADMINISTRATION" yields "T1".
// Labels matching neither pattern yield an empty string.
func ChapterNumber(label string) string {
	if m := chapterNumRe.FindStringSubmatch(label); m != nil {
		return m[1]
	}
	if m := titleNumRe.FindStringSubmatch(label); m != nil {
		return "T" + m[1]
	}
	return ""
}
