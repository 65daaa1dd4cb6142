package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-scout/internal/observability"
	"github.com/jonathan/company-scout/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Show the stored record for a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var (
	showPretty     bool
	showConfigPath string
)

func init() {
	showCmd.Flags().BoolVar(&showPretty, "pretty", false, "Print a formatted record instead of JSON")
	showCmd.Flags().StringVarP(&showConfigPath, "config", "c", "", "JSON config file")
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := resolveConfig(showConfigPath)
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

	rec, err := st.GetByDomain(ctx, args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no record for domain %s", args[0])
	}

	if showPretty {
		observability.NewPrinter(os.Stdout).PrintRecord(rec)
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
