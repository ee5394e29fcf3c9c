package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/readingroadmap/bestsellers/internal/export"
	"github.com/readingroadmap/bestsellers/internal/transform"
)

func newInspectCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <file.parquet>",
		Short: "Show books from a parquet export",
		Long: `Reads a parquet file written by fetch --parquet-out and prints the
number of books per course and level, followed by the books themselves.`,
		Example: `  # Show the first 10 books
  bestsellers inspect books.parquet

  # Show every book
  bestsellers inspect books.parquet --limit 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := export.ReadParquet(args[0])
			if err != nil {
				return fmt.Errorf("failed to load export: %w", err)
			}

			printInspect(cmd.OutOrStdout(), args[0], records, limit)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of books to show (0 for all)")

	return cmd
}

func printInspect(w io.Writer, path string, records []transform.BookRecord, limit int) {
	fmt.Fprintf(w, "%s: %d books\n\n", path, len(records))

	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Course+" / "+rec.Level]++
	}
	groups := make([]string, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		fmt.Fprintf(w, "  %-30s %d\n", g, counts[g])
	}

	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}
	if limit == 0 {
		return
	}

	fmt.Fprintln(w)
	for i, rec := range records[:limit] {
		fmt.Fprintf(w, "%3d. %s - %s [%s] AR %.1f (%s/%s)\n",
			i+1, rec.Title, rec.Author, rec.ISBN, rec.ARLevel, rec.Course, rec.Level)
	}
	if limit < len(records) {
		fmt.Fprintf(w, "... %d more\n", len(records)-limit)
	}
}
