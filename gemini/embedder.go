package gemini

import (
	"context"

	"github.com/mzawadzki/ordpipe"
	"google.golang.org/genai"
)

const embeddingModel = "gemini-embedding-001"

// Ensure Embedder implements ordpipe.Embedder at compile time.
var _ ordpipe.Embedder = (*Embedder)(nil)

// Embedder implements ordpipe.Embedder using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding vector for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "text required")
	}

	result, err := e.client.Models.EmbedContent(ctx, embeddingModel,
		[]*genai.Content{
			genai.NewContentFromText(text, genai.RoleUser),
		},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, ordpipe.Errorf(ordpipe.EINTERNAL, "gemini returned no embedding")
	}

	return result.Embeddings[0].Values, nil
}
