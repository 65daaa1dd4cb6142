package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSuffixPattern strips trailing taglines like "Acme Corp - Home".
var titleSuffixPattern = regexp.MustCompile(`\s*[-|–]\s*.*$`)

// NameExtractor extracts the company name from a page. Candidate priority is
// the document title, then heading tags, then meta tags; only the
// highest-priority non-empty match is returned to limit noise.
type NameExtractor struct{}

// Kind returns the field kind this extractor produces.
func (e *NameExtractor) Kind() FieldKind { return FieldName }

// Extract returns at most one name candidate.
func (e *NameExtractor) Extract(page *Page) []Candidate {
	sources := []struct {
		context string
		lookup  func() string
	}{
		{"title", func() string { return e.fromTitle(page.doc) }},
		{"heading", func() string { return e.fromHeadings(page.doc) }},
		{"meta", func() string { return e.fromMeta(page.doc) }},
	}

	for _, src := range sources {
		if name := src.lookup(); name != "" {
			return []Candidate{{
				Value:    name,
				Kind:     FieldName,
				PageType: page.PageType,
				Context:  src.context,
			}}
		}
	}
	return nil
}

func (e *NameExtractor) fromTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	// "Company Name - Home" style titles carry the name up front.
	return strings.TrimSpace(titleSuffixPattern.ReplaceAllString(title, ""))
}

func (e *NameExtractor) fromHeadings(doc *goquery.Document) string {
	for _, selector := range []string{"h1", "h2"} {
		if name := collapseWhitespace(doc.Find(selector).First().Text()); name != "" {
			return name
		}
	}
	return ""
}

func (e *NameExtractor) fromMeta(doc *goquery.Document) string {
	selectors := []string{
		`meta[property="og:site_name"]`,
		`meta[name="application-name"]`,
	}
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if name := strings.TrimSpace(content); name != "" {
				return name
			}
		}
	}
	return ""
}
