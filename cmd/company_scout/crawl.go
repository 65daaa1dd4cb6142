package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-scout/internal/config"
	"github.com/jonathan/company-scout/internal/crawl"
	"github.com/jonathan/company-scout/internal/observability"
	"github.com/jonathan/company-scout/internal/store"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl domains and index extracted company facts",
	Long:  "Crawls each domain's homepage and its contact/about pages, extracts company facts, and merges them into the index by domain.",
	RunE:  runCrawl,
}

var (
	crawlDomainsFile   string
	crawlConfigPath    string
	crawlMaxConcurrent int
	crawlRPS           float64
	crawlTimeoutSec    int
	crawlVerbose       bool
)

func init() {
	crawlCmd.Flags().StringVarP(&crawlDomainsFile, "domains", "d", "", "CSV file with a 'domain' column")
	crawlCmd.Flags().StringVarP(&crawlConfigPath, "config", "c", "", "JSON config file")
	crawlCmd.Flags().IntVar(&crawlMaxConcurrent, "max-concurrent", 0, "Domains crawled in parallel")
	crawlCmd.Flags().Float64Var(&crawlRPS, "rps", 0, "Global fetch rate limit in requests per second")
	crawlCmd.Flags().IntVar(&crawlTimeoutSec, "timeout", 0, "Per-page fetch timeout in seconds")
	crawlCmd.Flags().BoolVarP(&crawlVerbose, "verbose", "v", false, "Print a formatted run summary")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(crawlConfigPath)
	if err != nil {
		return err
	}
	// Flags win over config file and environment
	flagCfg := config.Config{
		DomainsFile:          crawlDomainsFile,
		MaxConcurrentDomains: crawlMaxConcurrent,
		RequestsPerSecond:    crawlRPS,
		FetchTimeoutSeconds:  crawlTimeoutSec,
	}
	merged := flagCfg.MergeWithDefaults(*cfg)
	if err := merged.Validate(); err != nil {
		return err
	}
	if merged.DomainsFile == "" {
		return fmt.Errorf("domains file required: set --domains flag, config 'domains_file', or DOMAINS_FILE")
	}
	if merged.DatabaseURL == "" {
		return fmt.Errorf("database URL required: set config 'database_url' or DATABASE_URL")
	}

	domains, invalid, err := crawl.LoadDomains(merged.DomainsFile)
	if err != nil {
		return fmt.Errorf("failed to load domains: %w", err)
	}
	if invalid > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d invalid domains\n", invalid)
	}

	ctx := context.Background()
	st, err := store.Connect(ctx, merged.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	runID, err := st.CreateCrawlRun(ctx, merged.DomainsFile)
	if err != nil {
		return err
	}

	runner := crawl.NewRunner(st, nil, crawl.Options{
		MaxConcurrentDomains: merged.MaxConcurrentDomains,
		RequestsPerSecond:    merged.RequestsPerSecond,
		FetchTimeout:         time.Duration(merged.FetchTimeoutSeconds) * time.Second,
		UserAgent:            merged.UserAgent,
	})

	summary, err := runner.Run(ctx, domains)
	if err != nil {
		_ = st.CompleteCrawlRun(ctx, runID, store.RunStatusFailed, 0, 0, 0, 0)
		return fmt.Errorf("crawl failed: %w", err)
	}

	if err := st.CompleteCrawlRun(ctx, runID, store.RunStatusCompleted,
		summary.DomainsAttempted, summary.DomainsSucceeded,
		summary.PagesAttempted, summary.PagesFetched); err != nil {
		return err
	}

	fmt.Printf("Crawl %s finished\n", runID)
	if crawlVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCrawlSummary(summary)
	} else {
		fmt.Printf("Domains: %d/%d succeeded\n", summary.DomainsSucceeded, summary.DomainsAttempted)
		fmt.Printf("Pages:   %d/%d fetched\n", summary.PagesFetched, summary.PagesAttempted)
	}
	return nil
}

// resolveConfig layers the optional config file over environment defaults.
func resolveConfig(path string) (*config.Config, error) {
	env := config.FromEnv()
	if path == "" {
		return &env, nil
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	merged := fileCfg.MergeWithDefaults(env)
	return &merged, nil
}
