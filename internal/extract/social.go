package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// socialHosts is the curated set of known social network domains, including
// short forms. Loaded once; treated as read-only static data.
var socialHosts = map[string]bool{
	"facebook.com":  true,
	"fb.com":        true,
	"twitter.com":   true,
	"x.com":         true,
	"linkedin.com":  true,
	"lnkd.in":       true,
	"instagram.com": true,
	"youtube.com":   true,
	"youtu.be":      true,
	"pinterest.com": true,
	"tiktok.com":    true,
}

// profileSectionSegments are path prefixes that introduce a profile, page, or
// channel on the networks above (e.g. linkedin.com/company/acme).
var profileSectionSegments = map[string]bool{
	"company": true,
	"school":  true,
	"in":      true,
	"pages":   true,
	"people":  true,
	"channel": true,
	"user":    true,
	"c":       true,
}

// nonProfileSegments are generic share/login/utility paths that carry no
// profile information and would otherwise flood the social set with noise.
var nonProfileSegments = map[string]bool{
	"share":      true,
	"sharer":     true,
	"sharer.php": true,
	"intent":     true,
	"login":      true,
	"signup":     true,
	"search":     true,
	"hashtag":    true,
	"plugins":    true,
	"watch":      true,
	"home":       true,
	"help":       true,
	"legal":      true,
	"privacy":    true,
	"policies":   true,
	"settings":   true,
	"dialog":     true,
	"oauth":      true,
}

// handlePattern matches a plausible account handle path segment.
var handlePattern = regexp.MustCompile(`^@?[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// SocialMediaExtractor scans anchor hrefs for profile-shaped links on known
// social networks. Only profile/page/channel URLs are kept; generic share and
// login links are filtered out.
type SocialMediaExtractor struct{}

// Kind returns the field kind this extractor produces.
func (e *SocialMediaExtractor) Kind() FieldKind { return FieldSocial }

// Extract returns deduplicated social profile link candidates.
func (e *SocialMediaExtractor) Extract(page *Page) []Candidate {
	seen := make(map[string]bool)
	var candidates []Candidate

	page.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		link := strings.TrimSpace(href)
		if link == "" || seen[link] {
			return
		}
		if !IsProfileLink(link) {
			return
		}
		seen[link] = true
		candidates = append(candidates, Candidate{
			Value:    link,
			Kind:     FieldSocial,
			PageType: page.PageType,
			Context:  "anchor",
		})
	})

	return candidates
}

// IsProfileLink reports whether link points at a profile, page, or channel on
// a known social network, as opposed to a generic share or login URL.
func IsProfileLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return false
	}

	if !isSocialHost(strings.ToLower(parsed.Host)) {
		return false
	}

	segments := pathSegments(parsed.Path)
	if len(segments) == 0 {
		return false
	}

	first := strings.ToLower(segments[0])
	if nonProfileSegments[first] {
		return false
	}

	// Section-prefixed profiles need an identifier after the section.
	if profileSectionSegments[first] {
		return len(segments) >= 2 && handlePattern.MatchString(segments[1])
	}

	// Otherwise the first segment itself must look like a handle
	// (facebook.com/acmecorp, youtube.com/@acme).
	return handlePattern.MatchString(segments[0])
}

// isSocialHost matches the host against the known networks, accepting
// subdomains such as m.facebook.com or de.linkedin.com.
func isSocialHost(host string) bool {
	host = strings.TrimPrefix(host, "www.")
	if socialHosts[host] {
		return true
	}
	for known := range socialHosts {
		if strings.HasSuffix(host, "."+known) {
			return true
		}
	}
	return false
}

func pathSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
