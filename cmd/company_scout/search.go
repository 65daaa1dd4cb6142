package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-scout/internal/observability"
	"github.com/jonathan/company-scout/internal/search"
	"github.com/jonathan/company-scout/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the best matching company for free-form criteria",
	Long:  "Matches names, phones, URLs, and addresses against the index using weighted fuzzy scoring. Prints the best match, or the top ranked candidates with --debug.",
	RunE:  runSearch,
}

var (
	searchNames      []string
	searchPhones     []string
	searchURLs       []string
	searchAddresses  []string
	searchDebug      bool
	searchPretty     bool
	searchConfigPath string
)

func init() {
	searchCmd.Flags().StringArrayVarP(&searchNames, "name", "n", nil, "Company name (repeatable)")
	searchCmd.Flags().StringArrayVarP(&searchPhones, "phone", "p", nil, "Phone number (repeatable)")
	searchCmd.Flags().StringArrayVarP(&searchURLs, "url", "u", nil, "Website or social URL (repeatable)")
	searchCmd.Flags().StringArrayVarP(&searchAddresses, "address", "a", nil, "Street address (repeatable)")
	searchCmd.Flags().BoolVar(&searchDebug, "debug", false, "Print the ranked candidate list")
	searchCmd.Flags().BoolVar(&searchPretty, "pretty", false, "Print formatted output instead of JSON")
	searchCmd.Flags().StringVarP(&searchConfigPath, "config", "c", "", "JSON config file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(searchConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL required: set config 'database_url' or DATABASE_URL")
	}

	ctx := context.Background()
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	scorer := search.NewScorer(st)
	result, err := scorer.Search(ctx, search.Criteria{
		Names:     searchNames,
		Phones:    searchPhones,
		URLs:      searchURLs,
		Addresses: searchAddresses,
	}, searchDebug)
	if err != nil {
		return err
	}

	if err := renderSearchResult(os.Stdout, result, searchDebug, searchPretty); err != nil {
		return err
	}
	if !result.Found {
		// Exit code signals no-match to scripts; close the pool first since
		// os.Exit skips deferred calls.
		st.Close()
		os.Exit(1)
	}
	return nil
}

// renderSearchResult writes the command output for a search result: JSON by
// default, boxed text with pretty.
func renderSearchResult(w io.Writer, result *search.Result, debug, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if !result.Found {
		return enc.Encode(map[string]any{
			"found":           false,
			"search_criteria": result.Criteria,
		})
	}

	if debug {
		if pretty {
			observability.NewPrinter(w).PrintMatches(result.Hits)
			return nil
		}
		return enc.Encode(map[string]any{
			"found":           true,
			"results":         result.Hits,
			"search_criteria": result.Criteria,
		})
	}
	if pretty {
		fmt.Fprintf(w, "Score: %.2f\n", result.Score)
		observability.NewPrinter(w).PrintRecord(result.Company)
		return nil
	}
	return enc.Encode(map[string]any{
		"found":   true,
		"score":   result.Score,
		"company": result.Company,
	})
}
