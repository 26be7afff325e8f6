package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mzawadzki/ordpipe"
)

// Upload batching: the store is written in fixed-size batches with a short
// pause between them to avoid overwhelming the database under bulk ingest.
const (
	UpsertBatchSize   = 50
	DefaultBatchPause = 500 * time.Millisecond
)

// Compile-time interface verification.
var _ ordpipe.VectorStore = (*PassageStore)(nil)

// PassageStore implements ordpipe.VectorStore using SQLite. Embeddings are
// stored as little-endian float32 blobs and similarity queries are a
// brute-force cosine scan; corpus sizes here are tens of thousands of
// passages, not millions.
type PassageStore struct {
	db *DB

	// BatchPause is the pause between upsert batches.
	// Defaults to DefaultBatchPause.
	BatchPause time.Duration

	Logger *slog.Logger
}

// NewPassageStore creates a new PassageStore.
func NewPassageStore(db *DB) *PassageStore {
	return &PassageStore{db: db, BatchPause: DefaultBatchPause}
}

// hashText computes xxHash of passage text and returns a hex string.
func hashText(text string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(text))
	return hex.EncodeToString(b[:])
}

// Upsert stores passages in batches. The first batch failing is fatal: it
// indicates the store itself is unusable. A later batch failing is logged
// and skipped, so the stored total may under-report; the caller learns the
// final count from the log.
func (s *PassageStore) Upsert(ctx context.Context, passages []*ordpipe.Passage) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pause := s.BatchPause
	if pause < 0 {
		pause = DefaultBatchPause
	}

	total := (len(passages) + UpsertBatchSize - 1) / UpsertBatchSize
	stored := 0

	for i := 0; i < len(passages); i += UpsertBatchSize {
		end := i + UpsertBatchSize
		if end > len(passages) {
			end = len(passages)
		}
		batch := passages[i:end]
		batchNum := i/UpsertBatchSize + 1

		if err := s.upsertBatch(ctx, batch); err != nil {
			if batchNum == 1 {
				return fmt.Errorf("upserting initial batch: %w", err)
			}
			logger.Error("batch upsert failed",
				"batch", batchNum,
				"total", total,
				"err", err,
			)
			continue
		}
		stored += len(batch)
		logger.Info("batch stored", "batch", batchNum, "total", total, "stored", stored)

		if end < len(passages) && pause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pause):
			}
		}
	}
	return nil
}

// upsertBatch writes one batch in a single transaction. Passages whose text
// hash is already present are replaced, keeping re-ingests idempotent.
func (s *PassageStore) upsertBatch(ctx context.Context, batch []*ordpipe.Passage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range batch {
		if err := p.Validate(); err != nil {
			return err
		}
		if len(p.Embedding) == 0 {
			return ordpipe.Errorf(ordpipe.EINVALID, "passage embedding required")
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO passages (
				id, text, text_hash, source, file_type, doc_length, word_count,
				chunk_type, strategy, focus_keyword, rule_pattern, embedding, created_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(text_hash) DO UPDATE SET
				embedding = excluded.embedding,
				chunk_type = excluded.chunk_type,
				strategy = excluded.strategy,
				focus_keyword = excluded.focus_keyword,
				rule_pattern = excluded.rule_pattern
		`, p.ID, p.Text, hashText(p.Text),
			p.Metadata.Source, p.Metadata.FileType, p.Metadata.DocLength, p.Metadata.WordCount,
			string(p.ChunkType), string(p.Strategy), p.FocusKeyword, p.RulePattern,
			encodeVector(p.Embedding), time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SimilarityQuery returns the top-k stored passages by cosine similarity to
// the query vector.
func (s *PassageStore) SimilarityQuery(ctx context.Context, vector []float32, k int) ([]ordpipe.Match, error) {
	if len(vector) == 0 {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "query vector required")
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, source, file_type, doc_length, word_count,
			chunk_type, strategy, focus_keyword, rule_pattern, embedding
		FROM passages
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []ordpipe.Match
	for rows.Next() {
		var p ordpipe.Passage
		var chunkType, strategy string
		var blob []byte

		if err := rows.Scan(&p.ID, &p.Text,
			&p.Metadata.Source, &p.Metadata.FileType, &p.Metadata.DocLength, &p.Metadata.WordCount,
			&chunkType, &strategy, &p.FocusKeyword, &p.RulePattern, &blob); err != nil {
			return nil, err
		}
		p.ChunkType = ordpipe.ChunkType(chunkType)
		p.Strategy = ordpipe.Strategy(strategy)
		p.Embedding = decodeVector(blob)

		matches = append(matches, ordpipe.Match{
			Passage: &p,
			Score:   cosineSimilarity(vector, p.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Count returns the number of stored passages.
func (s *PassageStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&n)
	return n, err
}

// encodeVector serializes a vector as little-endian float32 values.
func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector deserializes a little-endian float32 blob.
func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score zero.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
