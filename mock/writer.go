package mock

import (
	"context"

	"github.com/mzawadzki/ordpipe"
)

var _ ordpipe.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of ordpipe.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, result *ordpipe.ScrapeResult) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, result *ordpipe.ScrapeResult) error {
	return w.WriteRecordsFn(ctx, result)
}
