package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CrawlRun represents one crawl invocation and its counters
type CrawlRun struct {
	ID               uuid.UUID  `json:"id"`
	DomainsFile      string     `json:"domains_file"`
	Status           string     `json:"status"`
	DomainsAttempted int        `json:"domains_attempted"`
	DomainsSucceeded int        `json:"domains_succeeded"`
	PagesAttempted   int        `json:"pages_attempted"`
	PagesFetched     int        `json:"pages_fetched"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// Crawl run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// CreateCrawlRun records the start of a crawl and returns its ID
func (s *Store) CreateCrawlRun(ctx context.Context, domainsFile string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO crawl_runs (domains_file, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		domainsFile,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create crawl run: %w", err)
	}
	return id, nil
}

// CompleteCrawlRun marks a crawl run as finished and stores its counters
func (s *Store) CompleteCrawlRun(ctx context.Context, runID uuid.UUID, status string,
	domainsAttempted, domainsSucceeded, pagesAttempted, pagesFetched int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE crawl_runs
		 SET status = $1, domains_attempted = $2, domains_succeeded = $3,
			 pages_attempted = $4, pages_fetched = $5, completed_at = NOW()
		 WHERE id = $6`,
		status, domainsAttempted, domainsSucceeded, pagesAttempted, pagesFetched, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete crawl run: %w", err)
	}
	return nil
}

// GetCrawlRun retrieves a crawl run by ID. Returns nil if no run exists.
func (s *Store) GetCrawlRun(ctx context.Context, runID uuid.UUID) (*CrawlRun, error) {
	var run CrawlRun
	err := s.pool.QueryRow(ctx,
		`SELECT id, domains_file, status, domains_attempted, domains_succeeded,
				pages_attempted, pages_fetched, started_at, completed_at
		 FROM crawl_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.DomainsFile, &run.Status, &run.DomainsAttempted,
		&run.DomainsSucceeded, &run.PagesAttempted, &run.PagesFetched,
		&run.StartedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get crawl run: %w", err)
	}
	return &run, nil
}

// ListCrawlRuns retrieves recent crawl runs, newest first
func (s *Store) ListCrawlRuns(ctx context.Context, limit int) ([]CrawlRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, domains_file, status, domains_attempted, domains_succeeded,
				pages_attempted, pages_fetched, started_at, completed_at
		 FROM crawl_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list crawl runs: %w", err)
	}
	defer rows.Close()

	var runs []CrawlRun
	for rows.Next() {
		var run CrawlRun
		if err := rows.Scan(&run.ID, &run.DomainsFile, &run.Status, &run.DomainsAttempted,
			&run.DomainsSucceeded, &run.PagesAttempted, &run.PagesFetched,
			&run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crawl run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
