// Package stats summarizes index coverage and recent crawl outcomes.
package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/company-scout/internal/store"
)

// Source is the read side of the record store the report draws from.
type Source interface {
	Stats(ctx context.Context) (*store.IndexStats, error)
	ListCrawlRuns(ctx context.Context, limit int) ([]store.CrawlRun, error)
}

// RecentRunLimit is how many crawl runs a report includes.
const RecentRunLimit = 10

// RunSummary is one crawl run with its derived rates.
type RunSummary struct {
	store.CrawlRun
	DomainSuccessRate float64 `json:"domain_success_rate"`
	PageFetchRate     float64 `json:"page_fetch_rate"`
}

// Report combines index coverage, per-field fill rates, and recent runs.
type Report struct {
	Index     *store.IndexStats  `json:"index"`
	FillRates map[string]float64 `json:"fill_rates"`
	Runs      []RunSummary       `json:"recent_runs,omitempty"`
}

// Collect builds a report from the record store.
func Collect(ctx context.Context, src Source) (*Report, error) {
	index, err := src.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect index stats: %w", err)
	}

	runs, err := src.ListCrawlRuns(ctx, RecentRunLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to collect crawl runs: %w", err)
	}

	report := &Report{
		Index:     index,
		FillRates: fillRates(index),
	}
	for _, run := range runs {
		report.Runs = append(report.Runs, RunSummary{
			CrawlRun:          run,
			DomainSuccessRate: rate(run.DomainsSucceeded, run.DomainsAttempted),
			PageFetchRate:     rate(run.PagesFetched, run.PagesAttempted),
		})
	}
	return report, nil
}

// fillRates computes the share of records carrying each field, as a
// percentage rounded to one decimal.
func fillRates(index *store.IndexStats) map[string]float64 {
	return map[string]float64{
		"company_names": percent(index.WithNames, index.TotalCompanies),
		"phones":        percent(index.WithPhones, index.TotalCompanies),
		"social_media":  percent(index.WithSocialMedia, index.TotalCompanies),
		"addresses":     percent(index.WithAddresses, index.TotalCompanies),
		"contact_page":  percent(index.WithContactPage, index.TotalCompanies),
	}
}

func percent(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
