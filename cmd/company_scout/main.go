// Package main provides the entry point for the company-scout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "company_scout",
	Short: "Company facts crawler and fuzzy-match index",
	Long:  "Company Scout crawls company websites for contact facts (names, phones, social links, addresses), indexes them by domain, and answers fuzzy match queries via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
