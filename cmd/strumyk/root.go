package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/cli"
	"github.com/aretw0/strumyk/internal/config"
	"github.com/aretw0/strumyk/internal/logging"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "strumyk",
	Short: "Strumyk checks and simulates workflow nets",
	Long: `Strumyk validates workflow nets (sound: one source, one sink, every node on a
source-to-sink path) and runs them with a deterministic token simulator.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		var err error
		if envFile != "" {
			cfg, err = config.Load(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogDir, _ = cmd.Flags().GetString("catalog")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.New(cfg.Level())
		return nil
	},
}

// Execute adds all child commands to the root command and exits with the
// command's exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.Version = strumyk.Version

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("env-file", "", "Load settings from this file instead of ./.env")
	rootCmd.PersistentFlags().String("catalog", "", "Directory of nets addressable by name")
}

// newEngine builds the engine for one-shot commands. Reports are stored only
// when a report directory or Redis is configured.
func newEngine(cmd *cobra.Command) (*strumyk.Engine, func(), error) {
	if cmd.Flags().Lookup("report-dir") != nil && cmd.Flags().Changed("report-dir") {
		cfg.ReportDir, _ = cmd.Flags().GetString("report-dir")
	}

	store, _, closer, err := cli.OpenReportStore(cmd.Context(), cfg, false)
	if err != nil {
		return nil, nil, err
	}
	var opts []strumyk.Option
	if store != nil {
		opts = append(opts, strumyk.WithReportStore(store))
	}

	eng, err := cli.NewEngine(cfg, logger, opts...)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return eng, func() { _ = closer.Close() }, nil
}
