// Package docx loads word-processor (.docx) files into raw source documents
// by reading the word/document.xml part of the OOXML archive.
package docx

import (
	"archive/zip"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/mzawadzki/ordpipe"
)

// documentPart is the archive member holding the document body.
const documentPart = "word/document.xml"

// Ensure Loader implements ordpipe.DocumentLoader at compile time.
var _ ordpipe.DocumentLoader = (*Loader)(nil)

// Loader extracts paragraph text from .docx files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the .docx archive and returns a single document containing all
// paragraph text, joined with blank lines, with enriched source metadata.
func (l *Loader) Load(ctx context.Context, path string) ([]*ordpipe.SourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "opening docx %s: %v", filepath.Base(path), err)
	}
	defer archive.Close()

	body, err := readPart(&archive.Reader, documentPart)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "docx %s has no document body", filepath.Base(path))
	}

	text, err := extractParagraphs(body)
	if err != nil {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "parsing docx %s: %v", filepath.Base(path), err)
	}
	if text == "" {
		return nil, nil
	}

	return []*ordpipe.SourceDocument{{
		Text: text,
		Metadata: ordpipe.SourceMetadata{
			Source:    filepath.Base(path),
			FileType:  "docx",
			DocLength: len(text),
			WordCount: len(strings.Fields(text)),
		},
	}}, nil
}

// readPart returns the named archive member's contents, or nil if absent.
func readPart(r *zip.Reader, name string) ([]byte, error) {
	for _, file := range r.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// extractParagraphs joins the text runs of every paragraph element, with
// blank lines between paragraphs. Empty paragraphs are dropped.
func extractParagraphs(body []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return "", err
	}

	var paragraphs []string
	for _, p := range doc.FindElements("//p") {
		var sb strings.Builder
		for _, t := range p.FindElements(".//t") {
			sb.WriteString(t.Text())
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}
