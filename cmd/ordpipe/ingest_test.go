package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/chunk"
	main "github.com/mzawadzki/ordpipe/cmd/ordpipe"
	"github.com/mzawadzki/ordpipe/fs"
	"github.com/mzawadzki/ordpipe/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("placeholder"), 0644))
}

func TestIngestCmd_Run(t *testing.T) {
	t.Parallel()

	docText := strings.Repeat("Dogs must be kept on a leash in all county parks. ", 20)

	t.Run("loads, chunks, embeds, and stores", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "ordinances.pdf")

		loader := &mock.DocumentLoader{
			LoadFn: func(_ context.Context, path string) ([]*ordpipe.SourceDocument, error) {
				return []*ordpipe.SourceDocument{{
					Text: docText,
					Metadata: ordpipe.SourceMetadata{
						Source:    filepath.Base(path),
						FileType:  "pdf",
						DocLength: len(docText),
						WordCount: len(strings.Fields(docText)),
					},
				}}, nil
			},
		}

		var embedded int
		embedder := &mock.Embedder{
			EmbedFn: func(context.Context, string) ([]float32, error) {
				embedded++
				return []float32{1, 0, 0}, nil
			},
		}

		var stored []*ordpipe.Passage
		store := &mock.VectorStore{
			UpsertFn: func(_ context.Context, passages []*ordpipe.Passage) error {
				stored = passages
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Loader:   &fs.DirLoader{Loaders: map[string]ordpipe.DocumentLoader{".pdf": loader}},
			Chunker:  &chunk.Chunker{},
			Embedder: embedder,
			Store:    store,
		}

		cmd := &main.IngestCmd{Dir: dir}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotEmpty(t, stored)
		assert.Equal(t, len(stored), embedded, "every stored passage should be embedded")
		for _, p := range stored {
			assert.NotEmpty(t, p.Embedding)
		}
		assert.Contains(t, stdout.String(), "Loaded 1 documents")
		assert.Contains(t, stdout.String(), "Stored")
	})

	t.Run("fails when directory has no supported documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "notes.txt")

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Loader: &fs.DirLoader{Loaders: map[string]ordpipe.DocumentLoader{}},
		}

		cmd := &main.IngestCmd{Dir: dir}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, ordpipe.ENOTFOUND, ordpipe.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no supported documents")
	})

	t.Run("propagates embedder failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "ordinances.pdf")

		loader := &mock.DocumentLoader{
			LoadFn: func(context.Context, string) ([]*ordpipe.SourceDocument, error) {
				return []*ordpipe.SourceDocument{{Text: docText}}, nil
			},
		}
		embedder := &mock.Embedder{
			EmbedFn: func(context.Context, string) ([]float32, error) {
				return nil, ordpipe.Errorf(ordpipe.EUNAVAILABLE, "quota exceeded")
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Loader:   &fs.DirLoader{Loaders: map[string]ordpipe.DocumentLoader{".pdf": loader}},
			Chunker:  &chunk.Chunker{},
			Embedder: embedder,
		}

		cmd := &main.IngestCmd{Dir: dir}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, ordpipe.EUNAVAILABLE, ordpipe.ErrorCode(err))
	})
}
