// Package crawl discovers and fetches company pages and folds their extracted
// facts into per-domain records.
package crawl

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxDepth is the deepest page level fetched relative to the crawl origin.
// The domain root is depth 0; only links discovered there are followed.
const MaxDepth = 1

// followKeywords marks link paths likely to point at static informational
// pages. This list is the primary lever for the speed/accuracy tradeoff.
var followKeywords = []string{
	"contact",
	"kontakt",
	"about",
	"about-us",
	"company",
	"impressum",
	"imprint",
	"team",
	"legal",
}

// ShouldFollow decides whether a discovered link is worth fetching.
// A link is followed only when it stays on the origin's registrable domain,
// the resulting depth stays within MaxDepth, and its path or query carries
// one of the informational-page keywords.
func ShouldFollow(link, originDomain string, currentDepth int) bool {
	if currentDepth+1 > MaxDepth {
		return false
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !sameRegistrableDomain(parsed.Host, originDomain) {
		return false
	}

	haystack := strings.ToLower(parsed.Path + "?" + parsed.RawQuery)
	for _, keyword := range followKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

// sameRegistrableDomain reports whether host belongs to the origin domain,
// ignoring "www." prefixes and accepting subdomains of the origin.
func sameRegistrableDomain(host, originDomain string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	origin := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(originDomain)), "www.")
	if origin == "" {
		return false
	}
	return host == origin || strings.HasSuffix(host, "."+origin)
}

// PageTypeFor classifies a page URL into a coarse page type used for the
// record's page-type set and fill-rate statistics.
func PageTypeFor(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "other"
	}

	path := strings.ToLower(strings.Trim(parsed.Path, "/"))
	switch {
	case path == "":
		return "home"
	case strings.Contains(path, "contact"), strings.Contains(path, "kontakt"):
		return "contact"
	case strings.Contains(path, "about"), strings.Contains(path, "company"),
		strings.Contains(path, "team"), strings.Contains(path, "impressum"),
		strings.Contains(path, "imprint"):
		return "about"
	default:
		return "other"
	}
}

// CandidateLinks extracts deduplicated absolute links from a page that pass
// the follow policy for the given origin domain and depth.
func CandidateLinks(htmlContent, baseURL, originDomain string, currentDepth int) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &LinkExtractionError{Message: "invalid base URL: " + baseURL, Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" || strings.HasPrefix(href, "#") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}

		absolute := base.ResolveReference(linkURL)
		absolute.Fragment = ""
		link := strings.TrimSuffix(absolute.String(), "/")

		if seen[link] || !ShouldFollow(link, originDomain, currentDepth) {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links, nil
}
