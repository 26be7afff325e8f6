package ordpipe

// UnknownTitle is the sentinel returned when no title candidate qualifies.
const UnknownTitle = "Unknown Title"

// PageSection holds the structured content extracted from one rendered page.
type PageSection struct {
	// Title is the first qualifying title candidate, or UnknownTitle.
	Title string

	// Content is the flattened page text. Empty content means the page
	// yielded nothing extractable and is treated as a failure upstream.
	Content string

	// Subsections are section-marker headed spans discovered in the page,
	// in document order.
	Subsections []Subsection

	// NodeID is the anchor identifier parsed from the URL's nodeId query
	// parameter; empty if absent or the URL is malformed.
	NodeID string
}

// SectionExtractor parses raw HTML into a structured page section.
// Implementations are heuristic: the source site has no stable schema, so
// extraction is a cascade of selector and pattern-matching strategies.
type SectionExtractor interface {
	Extract(html, url string) (*PageSection, error)
}
