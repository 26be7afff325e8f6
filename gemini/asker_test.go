package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mzawadzki/ordpipe"
	"github.com/mzawadzki/ordpipe/gemini"
	"github.com/mzawadzki/ordpipe/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_Ask_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil, nil, nil)

	_, err := asker.Ask(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, ordpipe.EINVALID, ordpipe.ErrorCode(err))
	assert.Contains(t, ordpipe.ErrorMessage(err), "question required")
}

func TestAsker_Ask_PropagatesEmbedderError(t *testing.T) {
	t.Parallel()

	expectedErr := ordpipe.Errorf(ordpipe.EUNAVAILABLE, "embedding service down")
	embedder := &mock.Embedder{
		EmbedFn: func(context.Context, string) ([]float32, error) {
			return nil, expectedErr
		},
	}

	asker := gemini.NewAsker(nil, embedder, nil)

	_, err := asker.Ask(context.Background(), "are dogs allowed in parks?")

	require.Error(t, err)
	assert.Equal(t, ordpipe.EUNAVAILABLE, ordpipe.ErrorCode(err))
}

func TestAsker_Ask_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	embedder := &mock.Embedder{
		EmbedFn: func(context.Context, string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		},
	}
	expectedErr := ordpipe.Errorf(ordpipe.EINTERNAL, "database error")
	store := &mock.VectorStore{
		SimilarityQueryFn: func(context.Context, []float32, int) ([]ordpipe.Match, error) {
			return nil, expectedErr
		},
	}

	asker := gemini.NewAsker(nil, embedder, store)

	_, err := asker.Ask(context.Background(), "are dogs allowed in parks?")

	require.Error(t, err)
	assert.Equal(t, ordpipe.EINTERNAL, ordpipe.ErrorCode(err))
	assert.Contains(t, ordpipe.ErrorMessage(err), "database error")
}

func TestAsker_Ask_ReturnsFallbackWhenNoMatches(t *testing.T) {
	t.Parallel()

	embedder := &mock.Embedder{
		EmbedFn: func(context.Context, string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		},
	}
	store := &mock.VectorStore{
		SimilarityQueryFn: func(context.Context, []float32, int) ([]ordpipe.Match, error) {
			return nil, nil
		},
	}

	asker := gemini.NewAsker(nil, embedder, store) // nil client ok: generation never reached

	answer, err := asker.Ask(context.Background(), "are dogs allowed in parks?")

	require.NoError(t, err)
	assert.Equal(t, gemini.FallbackAnswer, answer)
}

func TestAsker_Ask_UsesConfiguredTopK(t *testing.T) {
	t.Parallel()

	embedder := &mock.Embedder{
		EmbedFn: func(context.Context, string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		},
	}
	var gotK int
	store := &mock.VectorStore{
		SimilarityQueryFn: func(_ context.Context, _ []float32, k int) ([]ordpipe.Match, error) {
			gotK = k
			return nil, nil
		},
	}

	asker := gemini.NewAsker(nil, embedder, store)
	asker.TopK = 3

	_, err := asker.Ask(context.Background(), "are dogs allowed in parks?")

	require.NoError(t, err)
	assert.Equal(t, 3, gotK)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	matches := []ordpipe.Match{
		{
			Passage: &ordpipe.Passage{
				Text:     "Dogs must be kept on a leash in all county parks.",
				Metadata: ordpipe.SourceMetadata{Source: "ordinances.pdf"},
			},
			Score: 0.92,
		},
		{
			Passage: &ordpipe.Passage{
				Text:     "Park hours of operation are dawn to dusk.",
				Metadata: ordpipe.SourceMetadata{Source: "parks.pdf"},
			},
			Score: 0.81,
		},
	}

	prompt := gemini.BuildUserPrompt(matches, "are dogs allowed in parks?")

	assert.Contains(t, prompt, "<index>1</index>")
	assert.Contains(t, prompt, "<index>2</index>")
	assert.Contains(t, prompt, "<source>ordinances.pdf</source>")
	assert.Contains(t, prompt, "Dogs must be kept on a leash")
	assert.True(t, strings.HasSuffix(prompt, "Question: are dogs allowed in parks?"))
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.NotNil(t, config.Temperature)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "municipal ordinances")
}
