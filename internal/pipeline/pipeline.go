package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/readingroadmap/bestsellers/internal/aladin"
	"github.com/readingroadmap/bestsellers/internal/config"
	"github.com/readingroadmap/bestsellers/internal/export"
	"github.com/readingroadmap/bestsellers/internal/transform"
)

// Fetcher returns one page of bestsellers for a category
type Fetcher interface {
	Fetch(ctx context.Context, cat config.Category, maxResults, start int) aladin.Result
}

// CategorySummary records what happened to one category
type CategorySummary struct {
	Category config.Category
	Items    int
	Err      error
}

// Summary describes a finished run
type Summary struct {
	Categories  []CategorySummary
	TotalItems  int
	FailedCount int
	SQLPath     string
	XLSXPath    string
	ParquetPath string
}

// Failed returns the categories whose fetch failed
func (s *Summary) Failed() []CategorySummary {
	var failed []CategorySummary
	for _, c := range s.Categories {
		if c.Err != nil {
			failed = append(failed, c)
		}
	}
	return failed
}

// Run fetches every configured category in order, transforms the items and
// writes the outputs once at the end. A failed category contributes no rows
// and processing moves on to the next one.
func Run(ctx context.Context, cfg *config.Config, fetcher Fetcher) (*Summary, error) {
	summary := &Summary{
		Categories:  make([]CategorySummary, 0, len(cfg.Categories)),
		SQLPath:     cfg.SQLPath,
		XLSXPath:    cfg.XLSXPath,
		ParquetPath: cfg.ParquetPath,
	}

	dialect, err := transform.ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	var records []transform.BookRecord
	blocks := make([]string, 0, len(cfg.Categories))

	for i, cat := range cfg.Categories {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run cancelled: %w", err)
		}

		slog.Info("Fetching category",
			"category", cat.CategoryID,
			"course", cat.CourseCode,
			"level", cat.LevelCode,
			"progress", fmt.Sprintf("%d/%d", i+1, len(cfg.Categories)))

		result := fetcher.Fetch(ctx, cat, cfg.MaxResults, cfg.Start)
		if !result.OK() {
			slog.Warn("Category fetch failed, continuing", "category", cat.CategoryID, "err", result.Err)
			summary.Categories = append(summary.Categories, CategorySummary{Category: cat, Err: result.Err})
			summary.FailedCount++
			blocks = append(blocks, "")
			continue
		}

		catRecords, pairs := transform.Transform(result.Items, cat, dialect)
		records = append(records, catRecords...)
		blocks = append(blocks, transform.Join(pairs))

		slog.Debug("Category transformed", "category", cat.CategoryID, "items", len(catRecords))
		summary.Categories = append(summary.Categories, CategorySummary{Category: cat, Items: len(catRecords)})
		summary.TotalItems += len(catRecords)
	}

	slog.Info("Writing SQL", "path", cfg.SQLPath, "categories", len(blocks))
	if err := export.WriteSQL(cfg.SQLPath, export.DefaultSQLHeader, blocks); err != nil {
		return summary, err
	}

	slog.Info("Writing spreadsheet", "path", cfg.XLSXPath, "rows", len(records))
	if err := export.WriteSpreadsheet(cfg.XLSXPath, records); err != nil {
		return summary, err
	}

	if cfg.ParquetPath != "" {
		slog.Info("Writing parquet", "path", cfg.ParquetPath, "rows", len(records))
		if err := export.WriteParquet(cfg.ParquetPath, records); err != nil {
			return summary, err
		}
	}

	return summary, nil
}
