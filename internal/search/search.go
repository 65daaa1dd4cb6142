// Package search composes scored multi-field queries over the company record
// store and ranks the results.
package search

import (
	"context"
	"strings"

	"github.com/jonathan/company-scout/internal/normalize"
	"github.com/jonathan/company-scout/internal/record"
)

// Relative clause weights, highest to lowest contribution. Calibrated against
// labeled input samples; adjust with debug-mode output.
const (
	BoostHighest = 3.0
	BoostMedium  = 2.0
	BoostLowest  = 1.0
)

// DebugResultSize is how many ranked hits debug mode returns.
const DebugResultSize = 10

// Field names the store knows how to query.
const (
	FieldCompanyNames = "company_names"
	FieldPhones       = "phones"
	FieldDomain       = "domain"
	FieldURLs         = "urls"
	FieldSocial       = "social_media"
	FieldAddresses    = "addresses"
)

// Criteria is free-form multi-valued search input. All fields are optional;
// each is independently normalized before querying.
type Criteria struct {
	Names     []string
	Phones    []string
	URLs      []string
	Addresses []string
}

// NormalizedCriteria is the cleaned form echoed back to callers.
type NormalizedCriteria struct {
	Names            []string `json:"names"`
	NormalizedPhones []string `json:"normalized_phones"`
	CleanedURLs      []string `json:"cleaned_urls"`
	Addresses        []string `json:"addresses"`
}

// Empty reports whether nothing usable remains after normalization.
func (n NormalizedCriteria) Empty() bool {
	return len(n.Names) == 0 && len(n.NormalizedPhones) == 0 &&
		len(n.CleanedURLs) == 0 && len(n.Addresses) == 0
}

// Clause is one scored condition of a composed query. Exact clauses
// contribute their full boost on a term match; fuzzy clauses contribute
// boost scaled by the engine's text similarity.
type Clause struct {
	Field string
	Term  string
	Fuzzy bool
	Boost float64
}

// Query is a composed multi-clause scored query.
type Query struct {
	Clauses []Clause
	Size    int
}

// Hit is one ranked record with its engine-provided relevance score.
type Hit struct {
	Record *record.CompanyRecord `json:"company"`
	Score  float64               `json:"score"`
}

// Store is the query side of the record store.
type Store interface {
	Query(ctx context.Context, q *Query) ([]Hit, error)
}

// Result is the outcome of a search. In debug mode Hits carries the full
// ranked list; otherwise only the top record is populated.
type Result struct {
	Found    bool
	Score    float64
	Company  *record.CompanyRecord
	Hits     []Hit
	Criteria NormalizedCriteria
}

// Scorer runs fuzzy-matched lookups against a record store.
type Scorer struct {
	store Store
}

// NewScorer creates a scorer over the given store.
func NewScorer(store Store) *Scorer {
	return &Scorer{store: store}
}

// Search normalizes the criteria, composes the scored query, and returns the
// best match (or the top ranked list when debug is set). Criteria that are
// empty after normalization yield Found=false without a store round-trip.
// Equal scores keep the engine's order; no secondary sort is applied.
func (s *Scorer) Search(ctx context.Context, criteria Criteria, debug bool) (*Result, error) {
	nc := Normalize(criteria)
	result := &Result{Criteria: nc}
	if nc.Empty() {
		return result, nil
	}

	query := BuildQuery(nc)
	query.Size = 1
	if debug {
		query.Size = DebugResultSize
	}

	hits, err := s.store.Query(ctx, query)
	if err != nil {
		return nil, &QueryError{Message: "record store query failed", Cause: err}
	}
	if len(hits) == 0 {
		return result, nil
	}

	result.Found = true
	result.Score = hits[0].Score
	result.Company = hits[0].Record
	if debug {
		result.Hits = hits
	}
	return result, nil
}

// Normalize cleans every criteria field: phones to digits, URLs to their
// comparison form, names and addresses trimmed. Values that fail
// normalization are dropped.
func Normalize(criteria Criteria) NormalizedCriteria {
	var nc NormalizedCriteria

	for _, name := range criteria.Names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			nc.Names = append(nc.Names, trimmed)
		}
	}
	for _, phone := range criteria.Phones {
		if digits := normalize.Phone(phone); digits != "" {
			nc.NormalizedPhones = append(nc.NormalizedPhones, digits)
		}
	}
	for _, rawURL := range criteria.URLs {
		if cleaned := normalize.CleanURL(rawURL); cleaned != "" {
			nc.CleanedURLs = append(nc.CleanedURLs, cleaned)
		}
	}
	for _, addr := range criteria.Addresses {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			nc.Addresses = append(nc.Addresses, trimmed)
		}
	}

	return nc
}

// BuildQuery composes the scored clauses for normalized criteria.
// Weights, highest to lowest: exact domain and fuzzy/exact name matches,
// then phone, stored URL/social-link, and name split-variant matches, then
// addresses
// (the noisiest field).
func BuildQuery(nc NormalizedCriteria) *Query {
	q := &Query{}

	for _, name := range nc.Names {
		q.Clauses = append(q.Clauses,
			Clause{Field: FieldCompanyNames, Term: name, Fuzzy: true, Boost: BoostHighest},
			Clause{Field: FieldCompanyNames, Term: name, Boost: BoostHighest},
		)
		// Split-variant widens recall for camel-cased names without
		// touching stored data; query-side only.
		for _, variant := range normalize.NameVariants(name)[1:] {
			q.Clauses = append(q.Clauses,
				Clause{Field: FieldCompanyNames, Term: variant, Fuzzy: true, Boost: BoostMedium})
		}
	}

	for _, phone := range nc.NormalizedPhones {
		q.Clauses = append(q.Clauses,
			Clause{Field: FieldPhones, Term: phone, Boost: BoostMedium})
	}

	for _, cleaned := range nc.CleanedURLs {
		// Stored URLs and social links keep their raw form; the store
		// compares them in cleaned form, so one host term covers all three.
		q.Clauses = append(q.Clauses,
			Clause{Field: FieldDomain, Term: cleaned, Boost: BoostHighest},
			Clause{Field: FieldURLs, Term: cleaned, Boost: BoostMedium},
			Clause{Field: FieldSocial, Term: cleaned, Boost: BoostMedium},
		)
	}

	for _, addr := range nc.Addresses {
		q.Clauses = append(q.Clauses,
			Clause{Field: FieldAddresses, Term: addr, Fuzzy: true, Boost: BoostLowest})
	}

	return q
}
