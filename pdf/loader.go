// Package pdf loads PDF files into raw source documents, one per page.
package pdf

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/mzawadzki/ordpipe"
)

// Ensure Loader implements ordpipe.DocumentLoader at compile time.
var _ ordpipe.DocumentLoader = (*Loader)(nil)

// Loader extracts plain text from PDF files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the PDF and returns one document per non-empty page, each with
// enriched source metadata.
func (l *Loader) Load(ctx context.Context, path string) ([]*ordpipe.SourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "opening PDF %s: %v", filepath.Base(path), err)
	}
	defer f.Close()

	var docs []*ordpipe.SourceDocument
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not invalidate the file.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		docs = append(docs, &ordpipe.SourceDocument{
			Text: text,
			Metadata: ordpipe.SourceMetadata{
				Source:    filepath.Base(path),
				FileType:  "pdf",
				DocLength: len(text),
				WordCount: len(strings.Fields(text)),
			},
		})
	}
	return docs, nil
}
