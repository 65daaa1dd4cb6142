package store

import (
	"context"
	"fmt"
)

// IndexStats summarizes coverage of the company index: how many records
// exist and how many carry each extracted field.
type IndexStats struct {
	TotalCompanies  int64 `json:"total_companies"`
	WithNames       int64 `json:"with_company_names"`
	WithPhones      int64 `json:"with_phones"`
	WithSocialMedia int64 `json:"with_social_media"`
	WithAddresses   int64 `json:"with_addresses"`
	WithContactPage int64 `json:"with_contact_page"`
}

// Stats computes index coverage counts in a single query
func (s *Store) Stats(ctx context.Context) (*IndexStats, error) {
	var stats IndexStats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
				COUNT(*) FILTER (WHERE cardinality(company_names) > 0),
				COUNT(*) FILTER (WHERE cardinality(phones) > 0),
				COUNT(*) FILTER (WHERE cardinality(social_media) > 0),
				COUNT(*) FILTER (WHERE cardinality(addresses) > 0),
				COUNT(*) FILTER (WHERE 'contact' = ANY(page_types))
		 FROM companies`,
	).Scan(&stats.TotalCompanies, &stats.WithNames, &stats.WithPhones,
		&stats.WithSocialMedia, &stats.WithAddresses, &stats.WithContactPage)
	if err != nil {
		return nil, fmt.Errorf("failed to compute index stats: %w", err)
	}
	return &stats, nil
}
