package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read-sum-magic",
		Short: "Score sheet OCR extraction with LLM-powered totals validation",
		Long: `read-sum-magic extracts exam score sheets using vision-capable LLMs.

Each sheet image yields the header metadata, every row of the marks table,
and two reported totals. The sum of the row totals is checked against the
bubble digits for an exact-equality pass/fail.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
