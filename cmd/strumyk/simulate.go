package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/strumyk/internal/cli"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate FILE|NAME [CONTEXT]",
	Short: "Run a net with the deterministic token simulator",
	Long: `Places one token on the start place and fires the first enabled transition (in
declaration order) until the end place is marked, no transition is enabled, or the
step cap is reached. CONTEXT is a JSON or YAML object with the guard variables.

Exit codes: 0 completed, 2 deadlocked or step limit exceeded, 1 on errors.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := simulateOptions(cmd)
		opts.Net = args[0]
		if len(args) > 1 {
			opts.Context = args[1]
		}
		opts.Format, _ = cmd.Flags().GetString("format")

		eng, done, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer done()

		_, err = cli.Simulate(cmd.Context(), eng, cmd.OutOrStdout(), opts)
		return err
	},
}

func simulateOptions(cmd *cobra.Command) cli.SimulateOptions {
	var opts cli.SimulateOptions
	opts.StartPlace, _ = cmd.Flags().GetString("start")
	opts.EndPlace, _ = cmd.Flags().GetString("end")
	opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
	opts.ContextFile, _ = cmd.Flags().GetString("context-file")
	return opts
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "Start place id (default p_start)")
	cmd.Flags().String("end", "", "End place id (default p_end)")
	cmd.Flags().Int("max-steps", 0, "Step cap (default 1000)")
	cmd.Flags().String("context-file", "", "JSON or YAML file with the guard variables")
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	addRunFlags(simulateCmd)
	simulateCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json or markdown")
	simulateCmd.Flags().String("report-dir", "", "Save the run report as JSON in this directory")
}
