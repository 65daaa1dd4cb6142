// Package record defines the canonical merged-by-domain company fact set and
// its merge semantics.
package record

import (
	"fmt"
	"strings"

	"github.com/jonathan/company-scout/internal/extract"
	"github.com/jonathan/company-scout/internal/normalize"
)

// CompanyRecord is the canonical fact set for one domain. Every list field
// behaves as a set: unique, non-empty, trimmed values in first-seen order.
// Domain never changes after creation; merges only add.
type CompanyRecord struct {
	Domain       string   `json:"domain"`
	CompanyNames []string `json:"company_names,omitempty"`
	Phones       []string `json:"phones,omitempty"`
	SocialMedia  []string `json:"social_media,omitempty"`
	Addresses    []string `json:"addresses,omitempty"`
	PageTypes    []string `json:"page_types,omitempty"`
	URLs         []string `json:"urls,omitempty"`
}

// New creates an empty record for a domain.
func New(domain string) *CompanyRecord {
	return &CompanyRecord{Domain: strings.TrimSpace(domain)}
}

// uniqueUnion appends items onto existing, dropping empties and duplicates
// while preserving first-seen order.
func uniqueUnion(existing []string, items ...string) []string {
	seen := make(map[string]bool, len(existing)+len(items))
	result := make([]string, 0, len(existing)+len(items))
	for _, lists := range [][]string{existing, items} {
		for _, item := range lists {
			cleaned := strings.TrimSpace(item)
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			result = append(result, cleaned)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// AddCompanyNames adds names, keeping the set invariant.
func (r *CompanyRecord) AddCompanyNames(names ...string) {
	r.CompanyNames = uniqueUnion(r.CompanyNames, names...)
}

// AddPhones adds digits-only phone numbers, keeping the set invariant.
func (r *CompanyRecord) AddPhones(phones ...string) {
	r.Phones = uniqueUnion(r.Phones, phones...)
}

// AddSocialMedia adds social profile links, keeping the set invariant.
func (r *CompanyRecord) AddSocialMedia(links ...string) {
	r.SocialMedia = uniqueUnion(r.SocialMedia, links...)
}

// AddAddresses adds postal addresses, keeping the set invariant.
func (r *CompanyRecord) AddAddresses(addresses ...string) {
	r.Addresses = uniqueUnion(r.Addresses, addresses...)
}

// AddPageTypes adds observed page types, keeping the set invariant.
func (r *CompanyRecord) AddPageTypes(pageTypes ...string) {
	r.PageTypes = uniqueUnion(r.PageTypes, pageTypes...)
}

// AddURLs adds source page URLs, keeping the set invariant.
func (r *CompanyRecord) AddURLs(urls ...string) {
	r.URLs = uniqueUnion(r.URLs, urls...)
}

// Clone returns a deep copy. The store hands out clones so callers never
// share slices with a record that may be merged concurrently.
func (r *CompanyRecord) Clone() *CompanyRecord {
	if r == nil {
		return nil
	}
	clone := &CompanyRecord{Domain: r.Domain}
	clone.CompanyNames = append([]string(nil), r.CompanyNames...)
	clone.Phones = append([]string(nil), r.Phones...)
	clone.SocialMedia = append([]string(nil), r.SocialMedia...)
	clone.Addresses = append([]string(nil), r.Addresses...)
	clone.PageTypes = append([]string(nil), r.PageTypes...)
	clone.URLs = append([]string(nil), r.URLs...)
	return clone
}

// MergeWith unions another record for the same domain into a new record.
func (r *CompanyRecord) MergeWith(other *CompanyRecord) (*CompanyRecord, error) {
	if other == nil {
		return r.Clone(), nil
	}
	if r.Domain != other.Domain {
		return nil, fmt.Errorf("cannot merge records for different domains: %s != %s", r.Domain, other.Domain)
	}

	merged := r.Clone()
	merged.AddCompanyNames(other.CompanyNames...)
	merged.AddPhones(other.Phones...)
	merged.AddSocialMedia(other.SocialMedia...)
	merged.AddAddresses(other.Addresses...)
	merged.AddPageTypes(other.PageTypes...)
	merged.AddURLs(other.URLs...)
	return merged, nil
}

// Merge folds candidates into a record for the domain. A nil existing record
// starts a fresh one. Candidates are normalized per field kind; values that
// fail normalization are silently dropped. Merging the same candidate set
// twice yields identical sets.
func Merge(existing *CompanyRecord, candidates []extract.Candidate, domain string) *CompanyRecord {
	result := existing.Clone()
	if result == nil || result.Domain == "" {
		result = New(domain)
	}

	for _, c := range candidates {
		switch c.Kind {
		case extract.FieldName:
			result.AddCompanyNames(c.Value)
		case extract.FieldPhone:
			if digits := normalize.Phone(c.Value); digits != "" {
				result.AddPhones(digits)
			}
		case extract.FieldSocial:
			result.AddSocialMedia(c.Value)
		case extract.FieldAddress:
			result.AddAddresses(c.Value)
		}
		if c.PageType != "" {
			result.AddPageTypes(c.PageType)
		}
	}

	return result
}
