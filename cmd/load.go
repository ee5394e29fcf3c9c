package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/readingroadmap/bestsellers/internal/dbload"
)

func newLoadCmd() *cobra.Command {
	var driver string
	var dsn string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "load <file.sql>",
		Short: "Apply a generated SQL file to the roadmap database",
		Long: `Applies the statements of a SQL file produced by fetch in a single
transaction. Books already present are skipped by their ON CONFLICT clause;
any other failure rolls the whole file back.

The courses and levels referenced by the file must already exist. Files
loaded with --driver sqlite must be generated with fetch --dialect sqlite.`,
		Example: `  # Apply to Postgres, DSN from DATABASE_URL
  bestsellers load aladin_insert_data.sql

  # Generate and apply to a local sqlite file
  bestsellers fetch --dialect sqlite --sql-out seed.sql
  bestsellers load seed.sql --driver sqlite --dsn ./roadmap.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}

			script, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read SQL file: %w", err)
			}

			statements := dbload.SplitStatements(string(script))
			slog.Info("Loading SQL", "file", args[0], "statements", len(statements), "driver", driver)

			loader, err := dbload.Open(cmd.Context(), driver, dsn)
			if err != nil {
				return err
			}
			defer loader.Close()

			n, err := loader.Apply(cmd.Context(), statements)
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d statements from %s\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", dbload.DriverPostgres, "Database driver (postgres or sqlite)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Database connection string (defaults to $DATABASE_URL)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}
