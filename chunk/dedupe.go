package chunk

import (
	"regexp"
	"strings"

	"github.com/mzawadzki/ordpipe"
)

var signatureSpaceRe = regexp.MustCompile(`\s+`)

// Signature returns the canonical form of passage text used for exact-match
// deduplication: lowercased, whitespace runs collapsed to a single space,
// trimmed.
func Signature(text string) string {
	return strings.TrimSpace(signatureSpaceRe.ReplaceAllString(strings.ToLower(text), " "))
}

// Deduplicate removes passages whose canonical signature has been seen
// before, preserving order: the first occurrence wins. Only byte-identical
// canonical forms are considered duplicates; fuzzy near-duplicate detection
// is deliberately not attempted.
func Deduplicate(passages []*ordpipe.Passage) []*ordpipe.Passage {
	seen := make(map[string]struct{}, len(passages))
	unique := make([]*ordpipe.Passage, 0, len(passages))

	for _, p := range passages {
		sig := Signature(p.Text)
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
