package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-scout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes search, import, and stats endpoints over the company index.`,
}

var (
	servePort       int
	serveConfigPath string
)

func init() {
	serveCmd.RunE = runServe
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL required: set config 'database_url' or DATABASE_URL")
	}
	port := servePort
	if cfg.Port != 0 && !serveCmd.Flags().Changed("port") {
		port = cfg.Port
	}

	srv, err := server.New(server.Config{
		Port:        port,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
