package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/codecred/internal/api"
	"github.com/dotcommander/codecred/internal/config"
	"github.com/dotcommander/codecred/internal/metrics"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring engine over HTTP",
	Long: `Serve starts an HTTP server exposing the scoring engine:

  POST /v1/evaluate  score a code snippet
  GET  /v1/metrics   list the metrics
  GET  /healthz      liveness check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		engine := metrics.NewEngine().WithParallel(cfg.Parallel)
		server := api.NewServer(engine, cfg.MaxFileSize)

		if !cfg.Quiet {
			fmt.Printf("codecred listening on %s\n", cfg.ListenAddr)
		}
		return server.Run(cfg.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (defaults to the configured listenAddr)")
	rootCmd.AddCommand(serveCmd)
}
