package mock

import (
	"context"

	"github.com/mzawadzki/ordpipe"
)

var _ ordpipe.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of ordpipe.VectorStore.
type VectorStore struct {
	UpsertFn          func(ctx context.Context, passages []*ordpipe.Passage) error
	SimilarityQueryFn func(ctx context.Context, vector []float32, k int) ([]ordpipe.Match, error)
}

func (s *VectorStore) Upsert(ctx context.Context, passages []*ordpipe.Passage) error {
	return s.UpsertFn(ctx, passages)
}

func (s *VectorStore) SimilarityQuery(ctx context.Context, vector []float32, k int) ([]ordpipe.Match, error) {
	return s.SimilarityQueryFn(ctx, vector, k)
}
