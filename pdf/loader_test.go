package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF builds a minimal single-font PDF with one page per entry in
// pageTexts. An empty entry produces a page with no text. Cross-reference
// offsets are computed while writing, so the file is valid by construction.
func writePDF(t *testing.T, pageTexts []string) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	n := len(pageTexts)
	fontNum := 3 + 2*n
	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	addObj("<< /Type /Catalog /Pages 2 0 R >>")
	addObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i, text := range pageTexts {
		addObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontNum, 4+2*i))

		var stream string
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		addObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	addObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)

	path := filepath.Join(t.TempDir(), "ordinances.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writePDF(t, []string{
		"Sec. 18-1. Dogs must be leashed in public parks.",
		"Violation of this section is a misdemeanor.",
	})

	docs, err := pdf.NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Contains(t, docs[0].Text, "Dogs must be leashed")
	assert.Contains(t, docs[1].Text, "misdemeanor")

	for _, doc := range docs {
		assert.Equal(t, "ordinances.pdf", doc.Metadata.Source)
		assert.Equal(t, "pdf", doc.Metadata.FileType)
		assert.Equal(t, len(doc.Text), doc.Metadata.DocLength)
		assert.Equal(t, len(strings.Fields(doc.Text)), doc.Metadata.WordCount)
	}
	assert.Equal(t, 9, docs[0].Metadata.WordCount)
}

func TestLoad_SkipsEmptyPages(t *testing.T) {
	t.Parallel()

	path := writePDF(t, []string{
		"Sec. 18-1. Dogs must be leashed in public parks.",
		"",
		"Violation of this section is a misdemeanor.",
	})

	docs, err := pdf.NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, docs, 2, "blank page should not produce a document")
	assert.Contains(t, docs[0].Text, "Sec. 18-1")
	assert.Contains(t, docs[1].Text, "Violation")
}

func TestLoad_NotAPDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0644))

	_, err := pdf.NewLoader().Load(context.Background(), path)

	require.Error(t, err)
	assert.Equal(t, ordpipe.EINVALID, ordpipe.ErrorCode(err))
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewLoader().Load(ctx, writePDF(t, []string{"some text"}))
	assert.ErrorIs(t, err, context.Canceled)
}
