package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-scout/internal/importer"
	"github.com/jonathan/company-scout/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk import company records from a CSV or JSON file",
	Long:  "Imports company records from a legacy CSV export or a JSON payload, merging rows into existing records by domain. The format is inferred from the file extension unless --format is set.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	importFormat     string
	importConfigPath string
)

func init() {
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv or json (default: by extension)")
	importCmd.Flags().StringVarP(&importConfigPath, "config", "c", "", "JSON config file")

	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	path := args[0]
	format := importFormat
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	cfg, err := resolveConfig(importConfigPath)
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
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	im := importer.New(st)
	var summary *importer.Summary
	switch strings.ToLower(format) {
	case "csv":
		summary, err = im.ImportCSVFile(ctx, path)
	case "json":
		summary, err = im.ImportJSONFile(ctx, path)
	default:
		return fmt.Errorf("unsupported import format %q (expected csv or json)", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d domains from %d rows (%d skipped)\n",
		summary.DomainsImported, summary.RowsRead, summary.RowsSkipped)
	return nil
}
