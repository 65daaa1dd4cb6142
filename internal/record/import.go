package record

import (
	"fmt"
	"strings"

	"github.com/jonathan/company-scout/internal/normalize"
)

// FromCSVRow builds a record from a CSV import row. The row must carry a
// non-empty "domain" column; name columns from the legacy export format
// (commercial, legal, pipe-separated all-names) are all folded in.
func FromCSVRow(row map[string]string) (*CompanyRecord, error) {
	domain := strings.TrimSpace(row["domain"])
	if domain == "" {
		return nil, fmt.Errorf("csv row must contain a 'domain' field")
	}

	r := New(domain)
	if name := row["company_commercial_name"]; name != "" {
		r.AddCompanyNames(name)
	}
	if name := row["company_legal_name"]; name != "" {
		r.AddCompanyNames(name)
	}
	if names := row["company_all_available_names"]; names != "" {
		r.AddCompanyNames(strings.Split(names, "|")...)
	}
	return r, nil
}

// ImportRow is one entry of a JSON import payload: per-page scraped facts
// keyed by domain.
type ImportRow struct {
	Domain      string   `json:"domain"`
	URL         string   `json:"url,omitempty"`
	Name        string   `json:"name,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	SocialMedia []string `json:"social_media,omitempty"`
	Address     string   `json:"address,omitempty"`
	PageType    string   `json:"page_type,omitempty"`
}

// FromImportRow builds a record from one JSON import entry.
func FromImportRow(row ImportRow) (*CompanyRecord, error) {
	if strings.TrimSpace(row.Domain) == "" {
		return nil, fmt.Errorf("import row must contain a 'domain' field")
	}

	r := New(row.Domain)
	if row.Name != "" {
		r.AddCompanyNames(row.Name)
	}
	if digits := normalize.Phone(row.Phone); digits != "" {
		r.AddPhones(digits)
	}
	r.AddSocialMedia(row.SocialMedia...)
	if row.Address != "" {
		r.AddAddresses(row.Address)
	}
	if row.PageType != "" {
		r.AddPageTypes(row.PageType)
	}
	if row.URL != "" {
		r.AddURLs(row.URL)
	}
	return r, nil
}

// AggregateByDomain folds per-page import rows into one record per domain.
// Rows without a domain are skipped.
func AggregateByDomain(rows []ImportRow) map[string]*CompanyRecord {
	byDomain := make(map[string]*CompanyRecord)
	for _, row := range rows {
		r, err := FromImportRow(row)
		if err != nil {
			continue
		}
		if existing, ok := byDomain[r.Domain]; ok {
			merged, err := existing.MergeWith(r)
			if err != nil {
				continue
			}
			byDomain[r.Domain] = merged
		} else {
			byDomain[r.Domain] = r
		}
	}
	return byDomain
}
