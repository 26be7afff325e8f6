package chunk

import (
	"strings"

	"github.com/mzawadzki/ordpipe"
)

// minSentenceLen filters out fragments before a keyword sentence anchors a
// context window.
const minSentenceLen = 20

// DefaultKeywords are the domain terms that anchor keyword-focused passages:
// the subjects residents actually ask about. Matching is case-insensitive
// substring matching over sentences.
var DefaultKeywords = []string{
	"dog", "pet", "animal", "leash", "park", "recreation",
	"fire", "pit", "burn", "flame", "outdoor",
	"vote", "voting", "election", "ballot", "register",
	"permit", "license", "application", "fee",
	"noise", "sound", "quiet", "disturb",
	"parking", "vehicle", "car", "truck",
	"business", "commercial", "retail", "restaurant",
	"zoning", "residential", "industrial",
	"tax", "property", "assessment", "payment",
	"smoking", "tobacco", "cigarette", "vaping",
	"alcohol", "beer", "wine", "liquor",
	"chicken", "livestock", "farm", "agriculture",
}

// keywordFocused builds a context window of the previous, matching, and next
// sentence around every sentence containing a keyword. The scan is
// O(sentences x keywords) and may emit the same window under several
// keywords; Deduplicate resolves the overlap afterwards.
func (c *Chunker) keywordFocused(text string, meta ordpipe.SourceMetadata) []*ordpipe.Passage {
	keywords := c.Keywords
	if keywords == nil {
		keywords = DefaultKeywords
	}

	sentences := splitSentences(text)
	lowered := make([]string, len(sentences))
	for i, s := range sentences {
		lowered[i] = strings.ToLower(s)
	}

	var passages []*ordpipe.Passage
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		for i, sentence := range sentences {
			if !strings.Contains(lowered[i], kw) {
				continue
			}
			if len(strings.TrimSpace(sentence)) <= minSentenceLen {
				continue
			}

			start := i - 1
			if start < 0 {
				start = 0
			}
			end := i + 2
			if end > len(sentences) {
				end = len(sentences)
			}

			parts := make([]string, 0, end-start)
			for _, s := range sentences[start:end] {
				parts = append(parts, strings.TrimSpace(s))
			}
			window := strings.Join(parts, " ")
			if len(window) <= minContextLen {
				continue
			}

			passages = append(passages, &ordpipe.Passage{
				Text:         window,
				Metadata:     meta,
				ChunkType:    ordpipe.ChunkKeywordFocused,
				Strategy:     ordpipe.StrategySpecificQuery,
				FocusKeyword: keyword,
			})
		}
	}
	return passages
}
