package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/company-scout/internal/record"
	"github.com/jonathan/company-scout/internal/search"
)

// Array columns the scored query may target, keyed by field name.
var arrayColumns = map[string]string{
	search.FieldCompanyNames: "company_names",
	search.FieldPhones:       "phones",
	search.FieldURLs:         "urls",
	search.FieldSocial:       "social_media",
	search.FieldAddresses:    "addresses",
}

// Columns holding raw URLs. Exact clauses against them compare the stored
// values in cleaned form (lowercased host, scheme and leading www stripped),
// matching how query terms are normalized.
var urlColumns = map[string]bool{
	"urls":         true,
	"social_media": true,
}

// Query executes a composed scored query. Each exact clause contributes its
// full boost when the term equals a stored value (URL-shaped columns are
// compared in cleaned form); each fuzzy clause
// contributes boost scaled by the best trigram similarity across the stored
// values. Records whose total score is not positive are excluded, and ties
// keep the database's order.
func (s *Store) Query(ctx context.Context, q *search.Query) ([]search.Hit, error) {
	if q == nil || len(q.Clauses) == 0 {
		return nil, nil
	}
	size := q.Size
	if size <= 0 {
		size = 1
	}

	var exprs []string
	var args []any
	for _, clause := range q.Clauses {
		expr, err := clauseExpr(clause, &args)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	args = append(args, size)
	sql := fmt.Sprintf(
		`SELECT domain, company_names, phones, social_media, addresses, page_types, urls, score
		 FROM (
			SELECT c.*, (%s) AS score FROM companies c
		 ) ranked
		 WHERE score > 0
		 ORDER BY score DESC
		 LIMIT $%d`,
		strings.Join(exprs, " + "), len(args),
	)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var hits []search.Hit
	for rows.Next() {
		var hit search.Hit
		var rec record.CompanyRecord
		err := rows.Scan(&rec.Domain, &rec.CompanyNames, &rec.Phones, &rec.SocialMedia,
			&rec.Addresses, &rec.PageTypes, &rec.URLs, &hit.Score)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		hit.Record = &rec
		hits = append(hits, hit)
	}
	return hits, nil
}

// clauseExpr renders one clause as a scoring SQL expression, appending its
// bind parameters to args.
func clauseExpr(clause search.Clause, args *[]any) (string, error) {
	if clause.Field == search.FieldDomain {
		if clause.Fuzzy {
			return "", fmt.Errorf("fuzzy match not supported on field %q", clause.Field)
		}
		*args = append(*args, clause.Term, clause.Boost)
		return fmt.Sprintf("(CASE WHEN c.domain = $%d THEN $%d::float8 ELSE 0 END)",
			len(*args)-1, len(*args)), nil
	}

	column, ok := arrayColumns[clause.Field]
	if !ok {
		return "", fmt.Errorf("unknown search field %q", clause.Field)
	}

	*args = append(*args, clause.Term, clause.Boost)
	if clause.Fuzzy {
		return fmt.Sprintf(
			"(SELECT COALESCE(MAX(similarity(v, $%d)), 0) FROM unnest(c.%s) AS v) * $%d::float8",
			len(*args)-1, column, len(*args)), nil
	}
	if urlColumns[column] {
		return fmt.Sprintf(
			`(CASE WHEN EXISTS (SELECT 1 FROM unnest(c.%s) AS v WHERE split_part(regexp_replace(lower(v), '^https?://(www\.)?', ''), '/', 1) = $%d) THEN $%d::float8 ELSE 0 END)`,
			column, len(*args)-1, len(*args)), nil
	}
	return fmt.Sprintf("(CASE WHEN $%d = ANY(c.%s) THEN $%d::float8 ELSE 0 END)",
		len(*args)-1, column, len(*args)), nil
}
