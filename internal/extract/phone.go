package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/company-scout/internal/normalize"
)

// phonePatterns covers the common separator and country-code shapes seen on
// company pages: (555) 123-4567, 555-123-4567, 555.123.4567, +1 555 123 4567.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]\d{4}`),
	regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
	regexp.MustCompile(`\+\d{1,3}(?:[-.\s]\d{2,4}){2,4}`),
}

// PhoneExtractor extracts phone numbers. Every match is reduced to its
// digits-only canonical form; duplicates within a page are collapsed.
type PhoneExtractor struct{}

// Kind returns the field kind this extractor produces.
func (e *PhoneExtractor) Kind() FieldKind { return FieldPhone }

// Extract returns deduplicated digits-only phone candidates.
func (e *PhoneExtractor) Extract(page *Page) []Candidate {
	seen := make(map[string]bool)
	var candidates []Candidate

	add := func(raw, context string) {
		digits := normalize.Phone(raw)
		if digits == "" || seen[digits] {
			return
		}
		seen[digits] = true
		candidates = append(candidates, Candidate{
			Value:    digits,
			Kind:     FieldPhone,
			PageType: page.PageType,
			Context:  context,
		})
	}

	// tel: anchors are explicit declarations, consult them first.
	page.doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(strings.TrimPrefix(href, "tel:"), "tel_link")
	})

	text := page.doc.Find("body").Text()
	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			add(match, "page_text")
		}
	}

	return candidates
}
