package main

import (
	"context"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves validation, simulation, graphs and stored run reports as a JSON API, with
Prometheus metrics on /metrics. Reports go to Redis when STRUMYK_REDIS_ADDR is set,
to --report-dir when given, and to memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("report-dir") {
			cfg.ReportDir, _ = cmd.Flags().GetString("report-dir")
		}

		// SIGINT/SIGTERM cancel ctx and start the graceful shutdown.
		ctx := lifecycle.NewSignalContext(context.Background())

		return cli.Serve(ctx, cfg, logger, strumyk.Version, cfg.HTTPAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("report-dir", "", "Store run reports as JSON files in this directory")
}
