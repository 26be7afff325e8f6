package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mzawadzki/ordpipe"
)

// DirLoader enumerates a directory's documents by file extension and
// delegates each file to the loader registered for its format. A failure to
// load one file is logged and excludes that file only; the rest of the
// directory still loads.
type DirLoader struct {
	// Loaders maps lowercase extensions (".pdf", ".docx") to format loaders.
	Loaders map[string]ordpipe.DocumentLoader

	Logger *slog.Logger
}

// LoadDir loads every supported file in dir, in directory order.
func (l *DirLoader) LoadDir(ctx context.Context, dir string) ([]*ordpipe.SourceDocument, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "reading document directory: %v", err)
	}

	var docs []*ordpipe.SourceDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		loader, ok := l.Loaders[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		loaded, err := loader.Load(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Error("failed to load document", "file", entry.Name(), "err", err)
			continue
		}
		logger.Info("loaded document", "file", entry.Name(), "parts", len(loaded))
		docs = append(docs, loaded...)
	}
	return docs, nil
}
