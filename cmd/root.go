package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bestsellers",
		Short: "Bestseller book list exporter for reading roadmap courses",
		Long: `Bestsellers pulls bestseller listings from the Aladin catalog API for a
fixed set of categories and turns them into SQL seed statements and a
spreadsheet for review.

Generated SQL can be applied to the roadmap database with the load command.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// ALADIN_TTB_KEY and DATABASE_URL may come from a local .env
			// file; a missing file is fine
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newLoadCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
