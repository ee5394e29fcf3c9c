package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/readingroadmap/bestsellers/internal/aladin"
	"github.com/readingroadmap/bestsellers/internal/config"
	"github.com/readingroadmap/bestsellers/internal/pipeline"
)

func newFetchCmd() *cobra.Command {
	cfg := config.New()
	var categoriesPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch bestsellers and write SQL and spreadsheet exports",
		Long: `Fetches one page of bestsellers per configured Aladin category and writes:

  - a SQL file with a books upsert and a course_books link per book
    (Postgres by default; --dialect sqlite stores keywords as JSON text)
  - an XLSX spreadsheet with one row per book
  - optionally a parquet file with the same rows

A category that fails to fetch is logged and skipped; the remaining
categories are still exported.`,
		Example: `  # Use the built-in categories, key from ALADIN_TTB_KEY
  bestsellers fetch

  # Custom category mapping and an extra parquet export
  bestsellers fetch --categories categories.yaml --parquet-out books.parquet

  # Fail the run if any category could not be fetched
  bestsellers fetch --strict

  # Generate SQL that a local sqlite database can load
  bestsellers fetch --dialect sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if categoriesPath != "" {
				cats, err := config.LoadCategories(categoriesPath)
				if err != nil {
					return err
				}
				cfg.Categories = cats
			}
			// resolved here so .env has been loaded and --help never shows the key
			if cfg.APIKey == "" {
				cfg.APIKey = os.Getenv(config.APIKeyEnv)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			slog.Info("Starting bestseller export", "categories", len(cfg.Categories), "sql", cfg.SQLPath, "xlsx", cfg.XLSXPath)

			client := aladin.NewClient(cfg.BaseURL, cfg.APIKey)
			summary, err := pipeline.Run(cmd.Context(), cfg, client)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			summary.Print(cmd.OutOrStdout())

			if cfg.Strict && summary.FailedCount > 0 {
				return fmt.Errorf("%d of %d categories failed to fetch", summary.FailedCount, len(cfg.Categories))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.APIKey, "ttb-key", "", "Aladin TTB API key (defaults to $"+config.APIKeyEnv+")")
	cmd.Flags().StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Aladin item list endpoint")
	cmd.Flags().StringVar(&categoriesPath, "categories", "", "YAML file with category mappings (defaults to built-in list)")
	cmd.Flags().StringVar(&cfg.SQLPath, "sql-out", cfg.SQLPath, "Path to output SQL file")
	cmd.Flags().StringVar(&cfg.XLSXPath, "xlsx-out", cfg.XLSXPath, "Path to output spreadsheet")
	cmd.Flags().StringVar(&cfg.ParquetPath, "parquet-out", "", "Optional path to output parquet file")
	cmd.Flags().StringVar(&cfg.Dialect, "dialect", cfg.Dialect, "SQL dialect of the generated file (postgres or sqlite)")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "Exit with an error if any category fails to fetch")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
