package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/strumyk/internal/cli"
)

var validateSyntaxCmd = &cobra.Command{
	Use:   "validate-syntax FILE [SCHEMA]",
	Short: "Check a net document against a JSON Schema",
	Long: `Decodes FILE (YAML or JSON, "-" for stdin) and checks it against SCHEMA, or the
built-in net schema when SCHEMA is omitted. Every violation is listed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var schemaPath string
		if len(args) > 1 {
			schemaPath = args[1]
		}

		eng, done, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer done()

		return cli.ValidateSyntax(cmd.Context(), eng, cmd.OutOrStdout(), args[0], schemaPath)
	},
}

var validateSemanticCmd = &cobra.Command{
	Use:     "validate-semantic FILE|NAME",
	Aliases: []string{"validate"},
	Short:   "Check that a net is a sound workflow net",
	Long: `Compiles the net and checks the soundness axioms in order: a unique source place,
a unique sink place, and every place and transition on a path from source to sink.
Guards that do not compile are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		eng, done, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer done()

		return cli.ValidateSemantic(cmd.Context(), eng, cmd.OutOrStdout(), cli.ValidateOptions{
			Net:    args[0],
			Format: format,
		})
	},
}

func init() {
	rootCmd.AddCommand(validateSyntaxCmd)
	rootCmd.AddCommand(validateSemanticCmd)

	validateSemanticCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json or markdown")
}
