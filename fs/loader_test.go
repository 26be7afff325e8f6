package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/fs"
	"github.com/mzawadzki/ordpipe/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "animals.pdf")
	touch(t, dir, "zoning.docx")
	touch(t, dir, "notes.txt") // unsupported, ignored

	loader := &mock.DocumentLoader{
		LoadFn: func(_ context.Context, path string) ([]*ordpipe.SourceDocument, error) {
			return []*ordpipe.SourceDocument{{
				Text:     "content",
				Metadata: ordpipe.SourceMetadata{Source: filepath.Base(path)},
			}}, nil
		},
	}

	dl := &fs.DirLoader{
		Loaders: map[string]ordpipe.DocumentLoader{
			".pdf":  loader,
			".docx": loader,
		},
	}

	docs, err := dl.LoadDir(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "animals.pdf", docs[0].Metadata.Source)
	assert.Equal(t, "zoning.docx", docs[1].Metadata.Source)
}

func TestLoadDir_PerFileFailureIsSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "bad.pdf")
	touch(t, dir, "good.pdf")

	dl := &fs.DirLoader{
		Loaders: map[string]ordpipe.DocumentLoader{
			".pdf": &mock.DocumentLoader{
				LoadFn: func(_ context.Context, path string) ([]*ordpipe.SourceDocument, error) {
					if filepath.Base(path) == "bad.pdf" {
						return nil, errors.New("corrupt file")
					}
					return []*ordpipe.SourceDocument{{Text: "ok"}}, nil
				},
			},
		},
	}

	docs, err := dl.LoadDir(context.Background(), dir)

	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	t.Parallel()

	dl := &fs.DirLoader{Loaders: map[string]ordpipe.DocumentLoader{}}

	_, err := dl.LoadDir(context.Background(), filepath.Join(t.TempDir(), "absent"))

	require.Error(t, err)
	assert.Equal(t, ordpipe.EINVALID, ordpipe.ErrorCode(err))
}
