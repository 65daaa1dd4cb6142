// Package store provides PostgreSQL persistence for company records.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/company-scout/internal/record"
)

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const schema = `
CREATE EXTENSION IF NOT EXISTS pg_trgm;

CREATE TABLE IF NOT EXISTS companies (
	domain        TEXT PRIMARY KEY,
	company_names TEXT[] NOT NULL DEFAULT '{}',
	phones        TEXT[] NOT NULL DEFAULT '{}',
	social_media  TEXT[] NOT NULL DEFAULT '{}',
	addresses     TEXT[] NOT NULL DEFAULT '{}',
	page_types    TEXT[] NOT NULL DEFAULT '{}',
	urls          TEXT[] NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS companies_names_trgm
	ON companies USING gin ((array_to_string(company_names, ' ')) gin_trgm_ops);

CREATE TABLE IF NOT EXISTS crawl_runs (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	domains_file      TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'running',
	domains_attempted INT NOT NULL DEFAULT 0,
	domains_succeeded INT NOT NULL DEFAULT 0,
	pages_attempted   INT NOT NULL DEFAULT 0,
	pages_fetched     INT NOT NULL DEFAULT 0,
	started_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at      TIMESTAMPTZ
);
`

// EnsureSchema creates the tables, extensions, and indexes if they do not
// already exist. Safe to call on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// GetByDomain retrieves a company record by domain. Returns nil if no record
// exists.
func (s *Store) GetByDomain(ctx context.Context, domain string) (*record.CompanyRecord, error) {
	rec, err := scanCompany(s.pool.QueryRow(ctx,
		`SELECT domain, company_names, phones, social_media, addresses, page_types, urls
		 FROM companies WHERE domain = $1`,
		domain,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company %s: %w", domain, err)
	}
	return rec, nil
}

// UpsertMerge merges the incoming record into whatever is stored for its
// domain and writes the union back. Re-applying the same record is a no-op.
// Returns the merged record as stored.
func (s *Store) UpsertMerge(ctx context.Context, rec *record.CompanyRecord) (*record.CompanyRecord, error) {
	if rec == nil || rec.Domain == "" {
		return nil, fmt.Errorf("cannot upsert record without a domain")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanCompany(tx.QueryRow(ctx,
		`SELECT domain, company_names, phones, social_media, addresses, page_types, urls
		 FROM companies WHERE domain = $1 FOR UPDATE`,
		rec.Domain,
	))
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to read company %s: %w", rec.Domain, err)
	}

	merged := rec.Clone()
	if existing != nil {
		if merged, err = existing.MergeWith(rec); err != nil {
			return nil, fmt.Errorf("failed to merge company %s: %w", rec.Domain, err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO companies (domain, company_names, phones, social_media, addresses, page_types, urls)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (domain) DO UPDATE SET
			company_names = $2, phones = $3, social_media = $4,
			addresses = $5, page_types = $6, urls = $7, updated_at = NOW()`,
		merged.Domain, orEmpty(merged.CompanyNames), orEmpty(merged.Phones),
		orEmpty(merged.SocialMedia), orEmpty(merged.Addresses),
		orEmpty(merged.PageTypes), orEmpty(merged.URLs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert company %s: %w", rec.Domain, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit upsert for %s: %w", rec.Domain, err)
	}
	return merged, nil
}

// DeleteByDomain removes a company record. Returns an error if none exists.
func (s *Store) DeleteByDomain(ctx context.Context, domain string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM companies WHERE domain = $1`, domain)
	if err != nil {
		return fmt.Errorf("failed to delete company %s: %w", domain, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %s", domain)
	}
	return nil
}

// ListDomains retrieves stored domains in alphabetical order
func (s *Store) ListDomains(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT domain FROM companies ORDER BY domain LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// orEmpty keeps NOT NULL array columns happy when a record field was
// never populated.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func scanCompany(row rowScanner) (*record.CompanyRecord, error) {
	var rec record.CompanyRecord
	err := row.Scan(&rec.Domain, &rec.CompanyNames, &rec.Phones, &rec.SocialMedia,
		&rec.Addresses, &rec.PageTypes, &rec.URLs)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
