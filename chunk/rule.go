package chunk

import (
	"regexp"
	"strings"

	"github.com/mzawadzki/ordpipe"
)

// ruleContextRadius is how far around a rule match the context window
// extends, in characters, before boundary trimming.
const ruleContextRadius = 150

// rulePatterns match obligation, prohibition, permission, penalty,
// application, fee, and hours-of-operation language.
var rulePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(shall not|shall be|must|required|prohibited|allowed|permitted)[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)(it is unlawful|violation|penalty|fine)[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)(application for|permit required|license fee)[^.!?]*[.!?]`),
	regexp.MustCompile(`(?i)(hours of operation|open from|closed to)[^.!?]*[.!?]`),
}

// ruleBased extracts a context window around every rule-pattern match,
// trimmed to sentence-like boundaries best-effort.
func (c *Chunker) ruleBased(text string, meta ordpipe.SourceMetadata) []*ordpipe.Passage {
	var passages []*ordpipe.Passage
	for _, pattern := range rulePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			start := loc[0] - ruleContextRadius
			if start < 0 {
				start = 0
			}
			end := loc[1] + ruleContextRadius
			if end > len(text) {
				end = len(text)
			}

			context := trimToSentenceBoundary(strings.TrimSpace(text[start:end]))
			if len(context) <= minContextLen {
				continue
			}

			passages = append(passages, &ordpipe.Passage{
				Text:        context,
				Metadata:    meta,
				ChunkType:   ordpipe.ChunkQAStyle,
				Strategy:    ordpipe.StrategyRuleBased,
				RulePattern: pattern.String(),
			})
		}
	}
	return passages
}

var leadingFragmentRe = regexp.MustCompile(`^[a-z]\S*\s+`)

// trimToSentenceBoundary is a best-effort boundary heuristic: it drops a
// leading lowercase fragment (evidence of a mid-sentence cut) and truncates
// after the last terminal punctuation. It can still cut awkwardly; callers
// accept imperfect edges in exchange for bounded context. Replacing this
// with real sentence segmentation is a local change.
func trimToSentenceBoundary(context string) string {
	context = leadingFragmentRe.ReplaceAllString(context, "")

	if i := strings.LastIndexAny(context, ".!?"); i >= 0 {
		context = context[:i+1]
	}
	return strings.TrimSpace(context)
}
