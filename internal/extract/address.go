package extract

import (
	"regexp"
)

// usAddressPattern matches US-style street addresses in running text:
// "123 Main Street, Springfield, IL 62704".
var usAddressPattern = regexp.MustCompile(`\d+\s+[\w.\- ]+,\s*[\w.\- ]+,\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?`)

// addressElementSelectors target elements that carry an explicit semantic
// address label, checked before falling back to pattern matching over text.
var addressElementSelectors = []string{
	"address",
	`[itemprop="address"]`,
	`[class*="address"]`,
}

// AddressExtractor extracts a postal address in two stages: semantically
// labeled elements first, then a general pattern pass over visible text. The
// first high-confidence hit wins.
type AddressExtractor struct{}

// Kind returns the field kind this extractor produces.
func (e *AddressExtractor) Kind() FieldKind { return FieldAddress }

// Extract returns at most one address candidate.
func (e *AddressExtractor) Extract(page *Page) []Candidate {
	for _, selector := range addressElementSelectors {
		text := collapseWhitespace(page.doc.Find(selector).First().Text())
		if text != "" {
			return []Candidate{{
				Value:    text,
				Kind:     FieldAddress,
				PageType: page.PageType,
				Context:  "labeled_element",
			}}
		}
	}

	text := collapseWhitespace(page.doc.Find("body").Text())
	if match := usAddressPattern.FindString(text); match != "" {
		return []Candidate{{
			Value:    match,
			Kind:     FieldAddress,
			PageType: page.PageType,
			Context:  "text_pattern",
		}}
	}

	return nil
}
