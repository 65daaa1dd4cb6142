package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-scout/internal/store"
)

type fakeSource struct {
	index    *store.IndexStats
	runs     []store.CrawlRun
	indexErr error
	runsErr  error
	runLimit int
}

func (f *fakeSource) Stats(context.Context) (*store.IndexStats, error) {
	return f.index, f.indexErr
}

func (f *fakeSource) ListCrawlRuns(_ context.Context, limit int) ([]store.CrawlRun, error) {
	f.runLimit = limit
	return f.runs, f.runsErr
}

func TestCollect(t *testing.T) {
	src := &fakeSource{
		index: &store.IndexStats{
			TotalCompanies:  200,
			WithNames:       180,
			WithPhones:      75,
			WithSocialMedia: 120,
			WithAddresses:   33,
			WithContactPage: 90,
		},
		runs: []store.CrawlRun{
			{DomainsAttempted: 100, DomainsSucceeded: 80, PagesAttempted: 250, PagesFetched: 240},
			{DomainsAttempted: 0, DomainsSucceeded: 0},
		},
	}

	report, err := Collect(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, src.index, report.Index)
	assert.Equal(t, RecentRunLimit, src.runLimit)
	assert.Equal(t, map[string]float64{
		"company_names": 90.0,
		"phones":        37.5,
		"social_media":  60.0,
		"addresses":     16.5,
		"contact_page":  45.0,
	}, report.FillRates)

	require.Len(t, report.Runs, 2)
	assert.Equal(t, 80.0, report.Runs[0].DomainSuccessRate)
	assert.Equal(t, 96.0, report.Runs[0].PageFetchRate)
	assert.Equal(t, 0.0, report.Runs[1].DomainSuccessRate, "empty run must not divide by zero")
}

func TestCollect_EmptyIndex(t *testing.T) {
	src := &fakeSource{index: &store.IndexStats{}}

	report, err := Collect(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.FillRates["phones"])
	assert.Empty(t, report.Runs)
}

func TestCollect_SourceErrors(t *testing.T) {
	_, err := Collect(context.Background(), &fakeSource{indexErr: errors.New("down")})
	assert.ErrorContains(t, err, "index stats")

	_, err = Collect(context.Background(), &fakeSource{
		index: &store.IndexStats{}, runsErr: errors.New("down"),
	})
	assert.ErrorContains(t, err, "crawl runs")
}
