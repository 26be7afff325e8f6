// Package fs persists scrape results to disk: a JSON snapshot, a flattened
// CSV export, and a human-readable summary report.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mzawadzki/ordpipe"
)

// Output filenames within the writer's directory.
const (
	JSONFileName    = "ordinances.json"
	CSVFileName     = "ordinances.csv"
	SummaryFileName = "scraping_summary.txt"
)

// timestampLayout is used for human-readable timestamps in CSV and the
// summary report.
const timestampLayout = "2006-01-02 15:04:05"

// summaryPreviewLen caps the sample content preview in the summary report.
const summaryPreviewLen = 300

// Ensure Writer implements ordpipe.RecordWriter at compile time.
var _ ordpipe.RecordWriter = (*Writer)(nil)

// Writer writes scrape results to a directory. Each run overwrites the
// previous snapshot; records are never updated in place.
type Writer struct {
	dir string

	// Now stamps the summary report; overridable in tests.
	Now func() time.Time
}

// NewWriter creates a Writer targeting the given directory. The directory is
// created on first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, Now: time.Now}
}

// WriteRecords persists the full result set: JSON, CSV, and summary.
func (w *Writer) WriteRecords(ctx context.Context, result *ordpipe.ScrapeResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := w.writeJSON(result.Records); err != nil {
		return err
	}
	if err := w.writeCSV(result.Records); err != nil {
		return err
	}
	return w.writeSummary(result)
}

// writeJSON dumps all records as a UTF-8 JSON array with 2-space indent.
// Non-ASCII text is preserved as-is.
func (w *Writer) writeJSON(records []*ordpipe.OrdinanceRecord) error {
	f, err := os.Create(filepath.Join(w.dir, JSONFileName))
	if err != nil {
		return fmt.Errorf("creating JSON output: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if records == nil {
		records = []*ordpipe.OrdinanceRecord{}
	}
	if err := enc.Encode(records); err != nil {
		f.Close()
		return fmt.Errorf("encoding records: %w", err)
	}
	return f.Close()
}

// writeCSV dumps flattened records. Subsections are excluded from the CSV
// export by design.
func (w *Writer) writeCSV(records []*ordpipe.OrdinanceRecord) error {
	f, err := os.Create(filepath.Join(w.dir, CSVFileName))
	if err != nil {
		return fmt.Errorf("creating CSV output: %w", err)
	}
	cw := csv.NewWriter(f)
	header := []string{
		"Chapter", "Chapter Number", "Section ID", "Title",
		"Content", "URL", "Node ID", "Municipality", "Scraped At",
	}
	rows := [][]string{header}
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Chapter,
			rec.ChapterNumber,
			rec.SectionID,
			rec.Title,
			rec.Content,
			rec.URL,
			rec.NodeID,
			rec.Municipality,
			rec.ScrapedAt.Format(timestampLayout),
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV: %w", err)
	}
	return f.Close()
}

// writeSummary renders the human-readable report: totals, per-chapter
// counts, one sample record preview, and the failed URL list.
func (w *Writer) writeSummary(result *ordpipe.ScrapeResult) error {
	var b strings.Builder

	b.WriteString("ORDINANCE SCRAPING SUMMARY\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Total ordinances scraped: %d\n", len(result.Records))
	fmt.Fprintf(&b, "Failed URLs: %d\n", len(result.FailedURLs))
	fmt.Fprintf(&b, "Scraping completed at: %s\n\n", w.Now().Format(timestampLayout))

	if len(result.Records) > 0 {
		b.WriteString("SCRAPED CHAPTERS:\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")

		counts := make(map[string]int)
		var order []string
		for _, rec := range result.Records {
			if _, ok := counts[rec.Chapter]; !ok {
				order = append(order, rec.Chapter)
			}
			counts[rec.Chapter]++
		}
		for _, chapter := range order {
			fmt.Fprintf(&b, "%s: %d sections\n", chapter, counts[chapter])
		}

		sample := result.Records[0]
		b.WriteString("\nSAMPLE CONTENT:\n")
		b.WriteString(strings.Repeat("-", 15) + "\n")
		fmt.Fprintf(&b, "Chapter: %s\n", sample.Chapter)
		fmt.Fprintf(&b, "Title: %s\n", sample.Title)
		fmt.Fprintf(&b, "URL: %s\n", sample.URL)
		fmt.Fprintf(&b, "Content preview: %s...\n\n", preview(sample.Content, summaryPreviewLen))
	}

	if len(result.FailedURLs) > 0 {
		b.WriteString("FAILED URLS:\n")
		b.WriteString(strings.Repeat("-", 12) + "\n")
		for _, url := range result.FailedURLs {
			b.WriteString(url + "\n")
		}
	}

	return os.WriteFile(filepath.Join(w.dir, SummaryFileName), []byte(b.String()), 0644)
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
