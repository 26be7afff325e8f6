package mock

import (
	"context"

	"github.com/mzawadzki/ordpipe"
)

var _ ordpipe.DocumentLoader = (*DocumentLoader)(nil)

// DocumentLoader is a mock implementation of ordpipe.DocumentLoader.
type DocumentLoader struct {
	LoadFn func(ctx context.Context, path string) ([]*ordpipe.SourceDocument, error)
}

func (l *DocumentLoader) Load(ctx context.Context, path string) ([]*ordpipe.SourceDocument, error) {
	return l.LoadFn(ctx, path)
}
