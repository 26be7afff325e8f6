// Package slog provides logging decorators for domain services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mzawadzki/ordpipe"
)

// Ensure LoggingVectorStore implements ordpipe.VectorStore.
var _ ordpipe.VectorStore = (*LoggingVectorStore)(nil)

// LoggingVectorStore wraps a VectorStore with logging.
type LoggingVectorStore struct {
	next   ordpipe.VectorStore
	logger *slog.Logger
}

// NewLoggingVectorStore creates a new LoggingVectorStore.
func NewLoggingVectorStore(next ordpipe.VectorStore, logger *slog.Logger) *LoggingVectorStore {
	return &LoggingVectorStore{next: next, logger: logger}
}

// Upsert logs the passage count and duration and delegates to the wrapped store.
func (s *LoggingVectorStore) Upsert(ctx context.Context, passages []*ordpipe.Passage) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert",
			"passages", len(passages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Upsert(ctx, passages)
}

// SimilarityQuery logs the match count and duration and delegates to the
// wrapped store.
func (s *LoggingVectorStore) SimilarityQuery(ctx context.Context, vector []float32, k int) (matches []ordpipe.Match, err error) {
	defer func(begin time.Time) {
		s.logger.Info("similarity query",
			"k", k,
			"matches", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SimilarityQuery(ctx, vector, k)
}
