package pipeline

import (
	"fmt"
	"io"
)

// Print writes a human readable run summary
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Bestseller Export Summary")
	fmt.Fprintln(w, "========================================")
	for _, c := range s.Categories {
		status := fmt.Sprintf("%d items", c.Items)
		if c.Err != nil {
			status = fmt.Sprintf("FAILED (%v)", c.Err)
		}
		fmt.Fprintf(w, "  %-6d %-16s %-10s %s\n", c.Category.CategoryID, c.Category.CourseCode, c.Category.LevelCode, status)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Books:        %d\n", s.TotalItems)
	fmt.Fprintf(w, "Failed Categories:  %d\n", s.FailedCount)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Done: '%s' and '%s' have been created.\n", s.SQLPath, s.XLSXPath)
	if s.ParquetPath != "" {
		fmt.Fprintf(w, "Parquet export: %s\n", s.ParquetPath)
	}
}
