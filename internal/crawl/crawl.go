package crawl

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonathan/company-scout/internal/extract"
	"github.com/jonathan/company-scout/internal/fetch"
	"github.com/jonathan/company-scout/internal/record"
)

const (
	// DefaultMaxConcurrentDomains bounds in-flight domains during a run.
	DefaultMaxConcurrentDomains = 8
	// DefaultRequestsPerSecond is the global politeness ceiling on fetches.
	DefaultRequestsPerSecond = 4.0
)

// Store is the persistence collaborator: merge-by-domain upserts into the
// record store. Implementations must treat the upsert as an optimistic
// read-modify-write; the crawl never overwrites existing fields.
type Store interface {
	UpsertMerge(ctx context.Context, rec *record.CompanyRecord) (*record.CompanyRecord, error)
}

// Fetcher retrieves a page's HTML. Injected so tests run without a network.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// HTTPFetcher fetches pages over HTTP with a per-request timeout and an
// optional User-Agent override.
type HTTPFetcher struct {
	Timeout   time.Duration
	UserAgent string
}

// Fetch retrieves the page body, treating non-2xx statuses as failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	opts := fetch.DefaultOptions()
	if f.Timeout > 0 {
		opts.Timeout = f.Timeout
	}
	if f.UserAgent != "" {
		opts.UserAgent = f.UserAgent
	}
	result, err := fetch.URL(ctx, pageURL, opts)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// Options configures a crawl run.
type Options struct {
	MaxConcurrentDomains int
	RequestsPerSecond    float64
	FetchTimeout         time.Duration
	UserAgent            string
}

// Summary reports what a run attempted and achieved.
type Summary struct {
	DomainsAttempted int `json:"domains_attempted"`
	DomainsSucceeded int `json:"domains_succeeded"`
	PagesAttempted   int `json:"pages_attempted"`
	PagesFetched     int `json:"pages_fetched"`
}

// Runner crawls domains and folds extracted facts into the record store.
type Runner struct {
	store   Store
	fetcher Fetcher
	limiter *rate.Limiter
	opts    Options
}

// NewRunner wires a runner with defaults filled in.
func NewRunner(store Store, fetcher Fetcher, opts Options) *Runner {
	if opts.MaxConcurrentDomains <= 0 {
		opts.MaxConcurrentDomains = DefaultMaxConcurrentDomains
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if fetcher == nil {
		fetcher = &HTTPFetcher{Timeout: opts.FetchTimeout, UserAgent: opts.UserAgent}
	}
	return &Runner{
		store:   store,
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		opts:    opts,
	}
}

// Run crawls every domain, merging each domain's extracted facts into one
// record. Domains are independent: a failing domain is logged and skipped,
// never aborting the run. Concurrency is bounded by MaxConcurrentDomains.
func (r *Runner) Run(ctx context.Context, domains []string) (*Summary, error) {
	if len(domains) == 0 {
		return nil, &CrawlError{Message: "no domains to crawl"}
	}

	summary := &Summary{DomainsAttempted: len(domains)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MaxConcurrentDomains)

	for _, domain := range domains {
		g.Go(func() error {
			attempted, fetched, ok := r.crawlDomain(ctx, domain)
			mu.Lock()
			summary.PagesAttempted += attempted
			summary.PagesFetched += fetched
			if ok {
				summary.DomainsSucceeded++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// crawlDomain fetches the domain root plus policy-approved depth-1 pages and
// upserts the merged record. Returns pages attempted, pages fetched, and
// whether anything was stored.
func (r *Runner) crawlDomain(ctx context.Context, domain string) (attempted, fetched int, ok bool) {
	rootURL := "https://" + domain
	pages := []string{rootURL}

	rootHTML, err := r.fetchPage(ctx, rootURL)
	attempted++
	if err != nil {
		log.Printf("[crawl] %s: root fetch failed: %v", domain, err)
	} else {
		fetched++
		links, err := CandidateLinks(rootHTML, rootURL, domain, 0)
		if err != nil {
			log.Printf("[crawl] %s: link extraction failed: %v", domain, err)
		}
		pages = append(pages, links...)
	}

	var candidates []extract.Candidate
	var sourceURLs []string

	for i, pageURL := range pages {
		html := rootHTML
		if i > 0 {
			var err error
			html, err = r.fetchPage(ctx, pageURL)
			attempted++
			if err != nil {
				log.Printf("[crawl] %s: page fetch failed: %v", domain, err)
				continue
			}
			fetched++
		} else if rootHTML == "" {
			continue
		}

		page, err := extract.ParsePage(html, pageURL, PageTypeFor(pageURL))
		if err != nil {
			log.Printf("[crawl] %s: %v", domain, err)
			continue
		}

		candidates = append(candidates, extract.Run(page)...)
		sourceURLs = append(sourceURLs, pageURL)
	}

	if len(sourceURLs) == 0 {
		return attempted, fetched, false
	}

	rec := record.Merge(nil, candidates, domain)
	rec.AddURLs(sourceURLs...)

	if _, err := r.store.UpsertMerge(ctx, rec); err != nil {
		log.Printf("[crawl] %s: store upsert failed: %v", domain, err)
		return attempted, fetched, false
	}
	return attempted, fetched, true
}

// fetchPage applies the politeness limiter before delegating to the fetcher.
func (r *Runner) fetchPage(ctx context.Context, pageURL string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.fetcher.Fetch(ctx, pageURL)
}
