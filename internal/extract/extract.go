// Package extract turns parsed company web pages into typed fact candidates.
package extract

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FieldKind identifies the fact type a candidate belongs to.
type FieldKind string

// The closed set of extractable field kinds.
const (
	FieldName    FieldKind = "name"
	FieldPhone   FieldKind = "phone"
	FieldSocial  FieldKind = "social"
	FieldAddress FieldKind = "address"
)

// Candidate is a single extracted, not-yet-merged value with its field kind.
type Candidate struct {
	Value    string    `json:"value"`
	Kind     FieldKind `json:"kind"`
	PageType string    `json:"page_type,omitempty"`
	Context  string    `json:"context,omitempty"`
}

// Page wraps a parsed HTML document together with its originating URL and
// classified page type.
type Page struct {
	URL      string
	PageType string
	doc      *goquery.Document
}

// ParsePage parses raw HTML into a Page. Parse failure aborts extraction for
// this page only.
func ParsePage(htmlContent, pageURL, pageType string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ParseError{URL: pageURL, Cause: err}
	}
	return &Page{URL: pageURL, PageType: pageType, doc: doc}, nil
}

// Extractor produces zero or more candidates of a single field kind from a page.
type Extractor interface {
	Kind() FieldKind
	Extract(page *Page) []Candidate
}

// All returns the full extractor set. The set is fixed and known; new fact
// types mean a new variant here, not an open hierarchy.
func All() []Extractor {
	return []Extractor{
		&NameExtractor{},
		&PhoneExtractor{},
		&SocialMediaExtractor{},
		&AddressExtractor{},
	}
}

// Run executes every extractor against the page and collects their candidates.
// A failing extractor is logged and skipped; it never aborts the others.
func Run(page *Page) []Candidate {
	var candidates []Candidate
	for _, ex := range All() {
		results := runOne(ex, page)
		candidates = append(candidates, results...)
	}
	return candidates
}

// runOne isolates a single extractor so an unexpected panic inside one does
// not take down extraction of the remaining fields for the page.
func runOne(ex Extractor, page *Page) (results []Candidate) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[extract] %s extractor failed on %s: %v", ex.Kind(), page.URL, r)
			results = nil
		}
	}()
	return ex.Extract(page)
}

// collapseWhitespace flattens runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
