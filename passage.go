package ordpipe

import "context"

// ChunkType identifies which kind of passage a chunking strategy produced.
type ChunkType string

// ChunkType values.
const (
	ChunkOriginal       ChunkType = "original"
	ChunkKeywordFocused ChunkType = "keyword_focused"
	ChunkQAStyle        ChunkType = "qa_style"
)

// Strategy identifies the segmentation heuristic that produced a passage.
type Strategy string

// Strategy values.
const (
	StrategyBroadContext  Strategy = "broad_context"
	StrategySpecificQuery Strategy = "specific_query"
	StrategyRuleBased     Strategy = "rule_based"
)

// SourceMetadata describes the document a passage was derived from. It is a
// fixed-shape record rather than an open-ended map so that shape errors are
// caught at compile time.
type SourceMetadata struct {
	// Source is the origin filename or URL.
	Source string `json:"source"`

	// FileType is the file or content type ("pdf", "docx", "html").
	FileType string `json:"fileType"`

	// DocLength is the character length of the original document.
	DocLength int `json:"docLength"`

	// WordCount is the word count of the original document.
	WordCount int `json:"wordCount"`
}

// Passage is a bounded span of text prepared for embedding and retrieval.
// Many passages may derive from one source document; the derivation is
// one-way, carried as a metadata copy rather than a foreign key.
type Passage struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`

	Metadata  SourceMetadata `json:"metadata"`
	ChunkType ChunkType      `json:"chunkType"`
	Strategy  Strategy       `json:"strategy"`

	// FocusKeyword is set on keyword-focused passages only.
	FocusKeyword string `json:"focusKeyword,omitempty"`

	// RulePattern is set on rule-based passages only.
	RulePattern string `json:"rulePattern,omitempty"`

	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the passage contains invalid fields.
func (p *Passage) Validate() error {
	if p.Text == "" {
		return Errorf(EINVALID, "passage text required")
	}
	if p.ChunkType == "" {
		return Errorf(EINVALID, "passage chunk type required")
	}
	if p.Strategy == "" {
		return Errorf(EINVALID, "passage strategy required")
	}
	return nil
}

// Embedder turns text into a vector. The same model/version must be used for
// both storing passages and encoding queries within a deployment.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Match is a similarity query result.
type Match struct {
	Passage *Passage `json:"passage"`
	Score   float32  `json:"score"`
}

// VectorStore persists passages with their vectors and serves
// nearest-neighbor search. Indexing internals are its concern.
type VectorStore interface {
	// Upsert stores passages that already carry embeddings.
	Upsert(ctx context.Context, passages []*Passage) error

	// SimilarityQuery returns the top-k passages closest to the vector.
	SimilarityQuery(ctx context.Context, vector []float32, k int) ([]Match, error)
}

// Asker answers a natural-language question grounded in stored passages.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}
