package ordpipe

import "context"

// SourceDocument is a raw document acquired from a local file, ready for
// chunking. Metadata is enriched at load time with the source filename,
// file type, character length, and word count.
type SourceDocument struct {
	Text     string         `json:"text"`
	Metadata SourceMetadata `json:"metadata"`
}

// DocumentLoader loads raw documents from a single file of one supported
// format. A loader may return multiple documents per file (e.g., one per
// page).
type DocumentLoader interface {
	// Load reads the file and returns its documents with enriched metadata.
	Load(ctx context.Context, path string) ([]*SourceDocument, error)
}
