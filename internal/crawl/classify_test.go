package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldFollow(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		origin   string
		depth    int
		expected bool
	}{
		{"contact page at depth 0", "https://acme.com/contact", "acme.com", 0, true},
		{"about page at depth 0", "https://acme.com/about-us", "acme.com", 0, true},
		{"keyword in query", "https://acme.com/page?section=contact", "acme.com", 0, true},
		{"www prefix on link", "https://www.acme.com/contact", "acme.com", 0, true},
		{"subdomain of origin", "https://de.acme.com/kontakt", "acme.com", 0, true},
		{"external domain", "https://other.com/contact", "acme.com", 0, false},
		{"lookalike domain", "https://notacme.com/contact", "acme.com", 0, false},
		{"no keyword", "https://acme.com/products", "acme.com", 0, false},
		{"depth would exceed limit", "https://acme.com/contact", "acme.com", 1, false},
		{"deep depth", "https://acme.com/contact", "acme.com", 2, false},
		{"relative link unparsed", "/contact", "acme.com", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldFollow(tt.link, tt.origin, tt.depth))
		})
	}
}

func TestPageTypeFor(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://acme.com", "home"},
		{"https://acme.com/", "home"},
		{"https://acme.com/contact", "contact"},
		{"https://acme.com/contact-us", "contact"},
		{"https://acme.com/kontakt", "contact"},
		{"https://acme.com/about", "about"},
		{"https://acme.com/company/team", "about"},
		{"https://acme.com/products", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageTypeFor(tt.url))
		})
	}
}

func TestCandidateLinks_FollowsPolicy(t *testing.T) {
	html := `
		<html><body>
			<a href="/contact">Contact</a>
			<a href="/about">About</a>
			<a href="/products">Products</a>
			<a href="https://other.com/contact">External contact</a>
			<a href="#contact">Fragment</a>
		</body></html>
	`

	links, err := CandidateLinks(html, "https://acme.com", "acme.com", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://acme.com/contact", "https://acme.com/about"}, links)
}

func TestCandidateLinks_Deduplicates(t *testing.T) {
	html := `
		<html><body>
			<a href="/contact">Contact</a>
			<a href="/contact/">Contact again</a>
			<a href="https://acme.com/contact">Absolute contact</a>
		</body></html>
	`

	links, err := CandidateLinks(html, "https://acme.com", "acme.com", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://acme.com/contact"}, links)
}

func TestCandidateLinks_NothingAtDepthLimit(t *testing.T) {
	html := `<html><body><a href="/contact">Contact</a></body></html>`

	links, err := CandidateLinks(html, "https://acme.com/about", "acme.com", 1)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCandidateLinks_InvalidBaseURL(t *testing.T) {
	_, err := CandidateLinks("<html></html>", "not-a-url", "acme.com", 0)
	assert.Error(t, err)

	var linkErr *LinkExtractionError
	assert.ErrorAs(t, err, &linkErr)
}
