// Package goquery provides a SectionExtractor that parses rendered legal-code
// pages with CSS selectors and section-marker heuristics. The source site has
// no stable schema, so title, content, and subsection extraction are each an
// ordered cascade of strategies with substantiality thresholds.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mzawadzki/ordpipe"
)

// Substantiality thresholds for the extraction cascades.
const (
	minTitleLen     = 10
	minContainerLen = 100
	minBlockLen     = 50
	minSiblingLen   = 20
	maxSiblingNodes = 10
)

// titleSelectors are tried in order; the first candidate longer than
// minTitleLen wins.
var titleSelectors = []string{
	"h1",
	".page-title",
	".section-title",
	".ordinance-title",
	"title",
}

// contentSelectors identify the main content container.
var contentSelectors = []string{
	".content",
	".main-content",
	".ordinance-content",
	".section-content",
	`[role="main"]`,
	"main",
}

// boilerplateTerms disqualify a fallback text block as navigation chrome.
var boilerplateTerms = []string{"municode", "next", "search", "navigation"}

// Section-marker patterns, e.g. "Sec. 18-1.", "Section 18-1", "§ 18-1", "18-1".
var sectionMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`Sec\.\s*[\d-]+\.`),
	regexp.MustCompile(`Section\s+[\d-]+`),
	regexp.MustCompile(`§\s*[\d-]+`),
	regexp.MustCompile(`\d+-\d+`),
}

// nextHeaderRe detects that a sibling starts a new section, terminating
// body collection for the current one.
var nextHeaderRe = regexp.MustCompile(`Sec\.\s*[\d-]+\.|Section\s+[\d-]+`)

var (
	spaceRunRe   = regexp.MustCompile(` +`)
	blankRunRe   = regexp.MustCompile(`\n\s*\n`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Ensure Extractor implements ordpipe.SectionExtractor at compile time.
var _ ordpipe.SectionExtractor = (*Extractor)(nil)

// Extractor parses raw HTML into a structured page section.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the rendered HTML and returns the page's title, flattened
// content, discovered subsections, and the nodeId carried in the URL.
// Empty content is not an error here; the orchestrator treats it as a
// per-page extraction failure.
func (e *Extractor) Extract(html, pageURL string) (*ordpipe.PageSection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ordpipe.Errorf(ordpipe.EINVALID, "failed to parse HTML: %v", err)
	}

	// The title is resolved before boilerplate stripping: a heading inside
	// the page header is still a valid title candidate. Content and
	// subsection scans run on the cleaned tree.
	title := extractTitle(doc)

	doc.Find("script, style, nav, header, footer").Remove()

	return &ordpipe.PageSection{
		Title:       title,
		Content:     extractContent(doc),
		Subsections: extractSubsections(doc),
		NodeID:      ExtractNodeID(pageURL),
	}, nil
}

// extractTitle tries the title selector cascade and returns the first
// candidate of reasonable length, or the UnknownTitle sentinel.
func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		sel := doc.Find(selector).First()
		title := normalizeWhitespace(sel.Text())
		if len(title) > minTitleLen {
			return title
		}
	}
	return ordpipe.UnknownTitle
}

// extractContent resolves the flattened page text: first a qualifying content
// container, then a paragraph/division fallback filtered against navigation
// boilerplate.
func extractContent(doc *goquery.Document) string {
	var parts []string

	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := blockText(sel)
		if len(text) > minContainerLen {
			parts = append(parts, text)
			break
		}
	}

	if len(parts) == 0 {
		doc.Find("p, div").Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) > minBlockLen && !containsBoilerplate(text) {
				parts = append(parts, text)
			}
		})
	}

	if len(parts) == 0 {
		return ""
	}

	content := strings.Join(parts, "\n\n")
	content = blankRunRe.ReplaceAllString(content, "\n\n")
	content = spaceRunRe.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// extractSubsections scans heading and paragraph/division elements for
// section markers and collects each marker's following siblings as its body.
func extractSubsections(doc *goquery.Document) []ordpipe.Subsection {
	var subsections []ordpipe.Subsection

	doc.Find("h1, h2, h3, h4, p, div").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if !matchesSectionMarker(text) {
			return
		}
		body := collectSectionBody(sel)
		if body == "" {
			return
		}
		subsections = append(subsections, ordpipe.Subsection{
			Title:   text,
			Content: body,
		})
	})

	return subsections
}

// collectSectionBody gathers up to maxSiblingNodes following siblings of a
// section header, stopping early when a sibling itself starts a new section.
func collectSectionBody(header *goquery.Selection) string {
	var parts []string

	for sibling := header.Next(); sibling.Length() > 0 && len(parts) < maxSiblingNodes; sibling = sibling.Next() {
		text := strings.TrimSpace(sibling.Text())
		if len(text) > minSiblingLen {
			parts = append(parts, text)
		}
		if nextHeaderRe.MatchString(text) {
			break
		}
	}

	return strings.Join(parts, "\n\n")
}

// ExtractNodeID parses the nodeId query parameter from a URL.
// Returns an empty string if the parameter is absent or the URL is
// malformed; it never fails.
func ExtractNodeID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("nodeId")
}

// blockText flattens an element's text with newline separators between
// text nodes, mirroring per-block extraction rather than goquery's
// concatenated Text().
func blockText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, child *goquery.Selection) {
			if goquery.NodeName(child) == "#text" {
				if text := strings.TrimSpace(child.Text()); text != "" {
					parts = append(parts, text)
				}
				return
			}
			walk(child)
		})
	}
	walk(sel)
	return strings.Join(parts, "\n")
}

func matchesSectionMarker(text string) bool {
	for _, re := range sectionMarkerRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func containsBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range boilerplateTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
