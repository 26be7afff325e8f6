package ordpipe

import (
	"context"
	"time"
)

// DefaultMunicipality is the municipality recorded on scraped ordinances
// when no override is configured.
const DefaultMunicipality = "Rockdale County"

// Subsection is a titled span of text discovered inside a scraped page.
type Subsection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// OrdinanceRecord is one retrievable unit of scraped legal text. Records are
// created by the scrape orchestrator after a successful extraction and are
// immutable thereafter; a new scrape run produces a new snapshot rather than
// updating records in place.
type OrdinanceRecord struct {
	Chapter       string       `json:"chapter"`
	ChapterNumber string       `json:"chapterNumber,omitempty"`
	SectionID     string       `json:"sectionId"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	URL           string       `json:"url"`
	NodeID        string       `json:"nodeId"`
	Subsections   []Subsection `json:"subsections,omitempty"`
	Municipality  string       `json:"municipality"`
	ScrapedAt     time.Time    `json:"scrapedAt"`
}

// Validate returns an error if the record contains invalid fields.
// A record without content is an extraction failure, not a record.
func (r *OrdinanceRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Content == "" {
		return Errorf(EINVALID, "record content required")
	}
	return nil
}

// ChapterRef is a catalog entry for a known top-level chapter on the source
// site: the opaque anchor identifier plus its human-readable label.
type ChapterRef struct {
	NodeID string
	Label  string
}

// ScrapeResult holds everything a completed scrape run produced.
type ScrapeResult struct {
	Records    []*OrdinanceRecord
	FailedURLs []string
}

// RecordWriter persists the output of a scrape run.
type RecordWriter interface {
	// WriteRecords persists all records and the failure list.
	WriteRecords(ctx context.Context, result *ScrapeResult) error
}
