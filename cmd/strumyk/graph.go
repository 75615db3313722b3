package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/strumyk/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE|NAME",
	Short: "Export the net as a diagram",
	Long: `Outputs the net as a Mermaid flowchart (default) or through Graphviz as DOT, SVG or PNG.
With --trace the net is simulated first and fired transitions, marked places and
off-path nodes are highlighted; --run highlights a stored run instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		trace, _ := cmd.Flags().GetBool("trace")
		runID, _ := cmd.Flags().GetString("run")
		vars, _ := cmd.Flags().GetString("context")

		eng, done, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer done()

		sim := simulateOptions(cmd)
		sim.Context = vars
		return cli.Graph(cmd.Context(), eng, cmd.OutOrStdout(), cli.GraphOptions{
			Net:      args[0],
			Format:   format,
			Trace:    trace,
			Simulate: sim,
			RunID:    runID,
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("format", "f", "mermaid", "Output format: mermaid, dot, svg or png")
	graphCmd.Flags().Bool("trace", false, "Simulate the net and highlight the run")
	graphCmd.Flags().String("context", "", "Guard variables for --trace (JSON or YAML object)")
	graphCmd.Flags().String("run", "", "Highlight a stored run by id")
	graphCmd.Flags().String("report-dir", "", "Directory of stored run reports (for --run)")
	addRunFlags(graphCmd)
}
