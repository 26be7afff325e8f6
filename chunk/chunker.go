// Package chunk implements the multi-strategy segmentation engine that
// converts raw documents into overlapping, metadata-tagged passages for
// semantic retrieval. Three independent strategies run per document: a
// broad-context sliding window, keyword-anchored sentence windows, and
// rule-pattern extraction around obligation and permission language. Their
// outputs are concatenated; overlap between strategies is intentional and
// resolved afterwards by Deduplicate.
package chunk

import (
	"context"
	"regexp"
	"strings"

	"github.com/mzawadzki/ordpipe"
	"golang.org/x/sync/errgroup"
)

// Defaults for the broad-context sliding window.
const (
	DefaultWindowSize = 800
	DefaultOverlap    = 150
)

// minDocLen is the threshold below which a document is skipped entirely.
const minDocLen = 50

// minContextLen is the substance threshold for keyword-focused and
// rule-based passages.
const minContextLen = 100

// sentenceEndRe marks sentence boundaries: terminal punctuation followed by
// whitespace.
var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// Chunker applies the three segmentation strategies to documents. The zero
// value uses the default window geometry and keyword list. Chunking is a
// pure, in-memory transformation; a single Chunker is safe for concurrent
// use across documents.
type Chunker struct {
	// WindowSize is the broad-context window length in characters.
	// Defaults to DefaultWindowSize.
	WindowSize int

	// Overlap is the character overlap between consecutive windows.
	// Defaults to DefaultOverlap.
	Overlap int

	// Keywords overrides the default keyword list for the
	// keyword-focused strategy.
	Keywords []string
}

// Chunk converts one document into passages using all three strategies.
// Documents whose trimmed text is under 50 characters yield nothing.
func (c *Chunker) Chunk(doc *ordpipe.SourceDocument) []*ordpipe.Passage {
	text := strings.TrimSpace(doc.Text)
	if len(text) < minDocLen {
		return nil
	}

	var passages []*ordpipe.Passage
	passages = append(passages, c.broadContext(text, doc.Metadata)...)
	passages = append(passages, c.keywordFocused(text, doc.Metadata)...)
	passages = append(passages, c.ruleBased(text, doc.Metadata)...)
	return passages
}

// ChunkAll chunks documents concurrently, one goroutine per document, and
// returns the concatenated passages in document order. Per-document chunking
// shares no mutable state, so parallelism does not change the contract.
func (c *Chunker) ChunkAll(ctx context.Context, docs []*ordpipe.SourceDocument) ([]*ordpipe.Passage, error) {
	results := make([][]*ordpipe.Passage, len(docs))

	g, _ := errgroup.WithContext(ctx)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = c.Chunk(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var passages []*ordpipe.Passage
	for _, r := range results {
		passages = append(passages, r...)
	}
	return passages, nil
}

// broadContext slides a fixed-size window over the text, splitting at
// paragraph or sentence boundaries when one falls in the back half of the
// window, with a hard character cut as the fallback.
func (c *Chunker) broadContext(text string, meta ordpipe.SourceMetadata) []*ordpipe.Passage {
	window := c.WindowSize
	if window <= 0 {
		window = DefaultWindowSize
	}
	overlap := c.Overlap
	if overlap < 0 || overlap >= window {
		overlap = DefaultOverlap
	}

	var passages []*ordpipe.Passage
	for start := 0; start < len(text); {
		end := start + window
		if end >= len(text) {
			end = len(text)
		} else {
			end = splitPoint(text, start, end)
		}

		body := strings.TrimSpace(text[start:end])
		if body != "" {
			passages = append(passages, &ordpipe.Passage{
				Text:      body,
				Metadata:  meta,
				ChunkType: ordpipe.ChunkOriginal,
				Strategy:  ordpipe.StrategyBroadContext,
			})
		}

		if end == len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return passages
}

// splitPoint picks the cut position for a window ending at end: the last
// paragraph break in the back half of the window, else the last sentence
// end, else the last space, else the hard cut at end itself.
func splitPoint(text string, start, end int) int {
	half := start + (end-start)/2

	if i := strings.LastIndex(text[half:end], "\n\n"); i >= 0 {
		return half + i + 2
	}

	slice := text[half:end]
	if locs := sentenceEndRe.FindAllStringIndex(slice, -1); len(locs) > 0 {
		last := locs[len(locs)-1]
		return half + last[1]
	}

	if i := strings.LastIndex(slice, " "); i >= 0 {
		return half + i + 1
	}
	return end
}

// splitSentences splits text into sentences at terminal punctuation followed
// by whitespace. The punctuation stays with its sentence.
func splitSentences(text string) []string {
	locs := sentenceEndRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	sentences := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		// Cut after the punctuation character, before the whitespace.
		cut := loc[0] + 1
		sentences = append(sentences, text[prev:cut])
		prev = loc[1]
	}
	if prev < len(text) {
		sentences = append(sentences, text[prev:])
	}
	return sentences
}
