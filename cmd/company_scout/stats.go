package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-scout/internal/stats"
	"github.com/jonathan/company-scout/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index coverage and recent crawl runs",
	RunE:  runStats,
}

var statsConfigPath string

func init() {
	statsCmd.Flags().StringVarP(&statsConfigPath, "config", "c", "", "JSON config file")
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(statsConfigPath)
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

	report, err := stats.Collect(ctx, st)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
