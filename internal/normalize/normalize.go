// Package normalize provides canonical forms for phones, URLs, and company names.
package normalize

import (
	"net/url"
	"strings"
	"unicode"
)

// MinPhoneDigits is the minimum number of digits a phone candidate must contain.
const MinPhoneDigits = 7

// Phone reduces a raw phone string to its digit characters in original order.
// Returns the empty string when fewer than MinPhoneDigits digits remain.
func Phone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < MinPhoneDigits {
		return ""
	}
	return digits
}

// CleanURL reduces a URL to its comparison form: lowercased host without
// scheme, leading "www.", path, or trailing slash. The raw form is the
// caller's responsibility to retain for storage. Inputs without a scheme are
// treated as http URLs; unparseable input is returned trimmed.
func CleanURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	withScheme := trimmed
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		withScheme = "http://" + trimmed
	}

	parsed, err := url.Parse(withScheme)
	if err != nil || parsed.Host == "" {
		return trimmed
	}

	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

// NameVariants returns the trimmed raw name plus a split variant produced by
// separating camel-case boundaries ("AcmeCorp" -> "Acme Corp"). Runs shorter
// than three characters are not emitted as standalone parts, which keeps
// abbreviations like "IBM" intact. The variant is only included when it
// differs from the raw name.
func NameVariants(raw string) []string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil
	}

	variants := []string{name}
	if split := splitCamelCase(name); split != "" && split != name {
		variants = append(variants, split)
	}
	return variants
}

// splitCamelCase breaks a name at uppercase boundaries, keeping parts of at
// least three characters. Returns the empty string when no usable parts exist.
func splitCamelCase(name string) string {
	var parts []string
	var current strings.Builder

	flush := func() {
		if part := strings.TrimSpace(current.String()); len(part) >= 3 {
			parts = append(parts, part)
		}
		current.Reset()
	}

	for _, r := range name {
		if unicode.IsUpper(r) {
			flush()
		}
		current.WriteRune(r)
	}
	flush()

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}
