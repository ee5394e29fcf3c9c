package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the Aladin TTB item list endpoint
	DefaultBaseURL = "http://www.aladin.co.kr/ttb/api/ItemList.aspx"

	DefaultMaxResults = 10
	DefaultStart      = 1

	DefaultSQLPath  = "aladin_insert_data.sql"
	DefaultXLSXPath = "aladin_books.xlsx"

	DefaultDialect = "postgres"

	// APIKeyEnv is read when --ttb-key is not given
	APIKeyEnv = "ALADIN_TTB_KEY"
)

// Category maps an Aladin category to a roadmap course and level.
// Course and level codes must already exist in the destination database.
type Category struct {
	CategoryID int    `yaml:"category_id"`
	CourseCode string `yaml:"course"`
	LevelCode  string `yaml:"level"`
}

// DefaultCategories returns the built-in category mapping
func DefaultCategories() []Category {
	return []Category{
		{CategoryID: 11068, CourseCode: "YELLOW_BASIC", LevelCode: "AGE_0"},      // children -> toddlers
		{CategoryID: 50921, CourseCode: "PURPLE_CHAPTER", LevelCode: "GRADE_6"}, // teens -> upper elementary
	}
}

// Config holds everything a pipeline run needs
type Config struct {
	APIKey     string
	BaseURL    string
	Categories []Category
	MaxResults int
	Start      int

	SQLPath     string
	XLSXPath    string
	ParquetPath string // optional, empty disables parquet output

	// Dialect of the generated SQL: "postgres" or "sqlite"
	Dialect string

	// Strict turns a failed category into a failed run
	Strict bool
}

// New returns a Config populated with defaults. The API key is left empty;
// callers resolve it from flags or APIKeyEnv.
func New() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		Categories: DefaultCategories(),
		MaxResults: DefaultMaxResults,
		Start:      DefaultStart,
		SQLPath:    DefaultSQLPath,
		XLSXPath:   DefaultXLSXPath,
		Dialect:    DefaultDialect,
	}
}

// Validate checks the config before any request is made
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("TTB API key is required (set --ttb-key or %s)", APIKeyEnv)
	}
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if len(c.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	if c.SQLPath == "" || c.XLSXPath == "" {
		return errors.New("SQL and spreadsheet output paths are required")
	}

	switch c.Dialect {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported SQL dialect: %q", c.Dialect)
	}

	seen := make(map[int]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.CategoryID <= 0 {
			return fmt.Errorf("category %d: invalid category id %d", i+1, cat.CategoryID)
		}
		if cat.CourseCode == "" || cat.LevelCode == "" {
			return fmt.Errorf("category %d: course and level codes are required", cat.CategoryID)
		}
		if seen[cat.CategoryID] {
			return fmt.Errorf("duplicate category id: %d", cat.CategoryID)
		}
		seen[cat.CategoryID] = true
	}

	return nil
}

type categoryFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategories reads a category mapping from a YAML file
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	var f categoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse category file: %w", err)
	}

	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("no categories defined in %s", path)
	}

	return f.Categories, nil
}
