// Package scrape sequences the acquisition pipeline for a legal-code site:
// URL discovery over a known chapter catalog, fetch and extract per URL with
// polite pacing, and persistence of the resulting ordinance records.
package scrape

import "github.com/mzawadzki/ordpipe"

// DefaultBaseURL is the code-of-ordinances landing page that anchor
// identifiers are appended to.
const DefaultBaseURL = "https://library.municode.com/ga/rockdale_county/codes/code_of_ordinances"

// speculativeSuffixes are appended to known anchor identifiers to probe for
// child content: numbered subsections, roman-numeral articles, and generic
// section-role markers. Candidates are not guaranteed to exist; ones that
// resolve to empty content are dropped by the orchestrator.
var speculativeSuffixes = []string{
	"_S1", "_S2", "_S3", "_S4", "_S5",
	"_ART1", "_ART2", "_ART3",
	"_ARTII", "_ARTIII", "_ARTIV",
	"_DE", "_GE", "_PE", "_VI",
}

// KnownChapters is the base catalog of top-level chapters on the source site.
func KnownChapters() []ordpipe.ChapterRef {
	return []ordpipe.ChapterRef{
		{NodeID: "SPAGEOR_CH18AN", Label: "Chapter 18 - ANIMALS"},
		{NodeID: "SPAGEOR_CH42EN", Label: "Chapter 42 - ENVIRONMENT"},
		{NodeID: "SPBPLDE_TIT2LAUSZO_CH222OREPAST", Label: "Chapter 222 - OFF-STREET PARKING STANDARDS"},
		{NodeID: "SPBPLDE_TIT1AD", Label: "TITLE 1 - ADMINISTRATION"},
		{NodeID: "SPBPLDE_TIT2LAUSZO_CH218USRE", Label: "Chapter 218 - USE REGULATIONS"},
		{NodeID: "SPBPLDE_TIT2LAUSZO_CH206BAZODI", Label: "Chapter 206 - BASE ZONING DISTRICTS"},
		{NodeID: "PTIRELA", Label: "PART I - RELATED LAWS"},
	}
}

// Discover enumerates speculative child anchor identifiers for a known
// chapter anchor. It is a pure function of its input: the same anchor always
// yields the same ordered candidate set.
func Discover(anchorID string) []string {
	candidates := make([]string, 0, len(speculativeSuffixes))
	for _, suffix := range speculativeSuffixes {
		candidates = append(candidates, anchorID+suffix)
	}
	return candidates
}
