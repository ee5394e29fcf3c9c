package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/readingroadmap/bestsellers/internal/aladin"
	"github.com/readingroadmap/bestsellers/internal/config"
)

// PlaceholderARLevel is stored for every book; Aladin does not publish AR levels
const PlaceholderARLevel = 0.0

// Dialect selects how dialect-specific values are rendered
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect accepts "postgres" or "sqlite"; empty means postgres
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case "", Postgres:
		return Postgres, nil
	case SQLite:
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported SQL dialect: %s", s)
	}
}

// BookRecord is the tabular view of a fetched book
type BookRecord struct {
	Title   string  `parquet:"title"`
	Author  string  `parquet:"author"`
	ISBN    string  `parquet:"isbn"`
	ARLevel float64 `parquet:"ar_level"`
	Course  string  `parquet:"course"`
	Level   string  `parquet:"level"`
}

// StatementPair holds the two insert statements generated for one book
type StatementPair struct {
	Book       string
	CourseBook string
}

func (p StatementPair) String() string {
	return p.Book + p.CourseBook
}

// Transform maps the items of one category to records and statements, in order
func Transform(items []aladin.RawItem, cat config.Category, dialect Dialect) ([]BookRecord, []StatementPair) {
	records := make([]BookRecord, 0, len(items))
	pairs := make([]StatementPair, 0, len(items))

	for i, item := range items {
		records = append(records, BookRecord{
			Title:   item.Title,
			Author:  item.Author,
			ISBN:    item.ISBN13,
			ARLevel: PlaceholderARLevel,
			Course:  cat.CourseCode,
			Level:   cat.LevelCode,
		})
		pairs = append(pairs, StatementPair{
			Book:       BookStatement(item, dialect),
			CourseBook: CourseBookStatement(cat, item.ISBN13, i+1),
		})
	}

	return records, pairs
}

// Join concatenates statement pairs into one block of SQL text
func Join(pairs []StatementPair) string {
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.String())
	}
	return b.String()
}

// BookStatement builds the books upsert for an item, keyed by ISBN
func BookStatement(item aladin.RawItem, dialect Dialect) string {
	series := "NULL"
	if name, ok := SeriesName(item.Title); ok {
		series = quote(name)
	}

	return fmt.Sprintf(
		"INSERT INTO books (title, author, ar_level, mom_tip, key_words, series_name, isbn) "+
			"VALUES (%s, %s, %s, %s, %s, %s, %s) "+
			"ON CONFLICT (isbn) DO NOTHING;\n",
		quote(item.Title),
		quote(item.Author),
		formatLevel(PlaceholderARLevel),
		quote(Blurb(item.Description)),
		keywordsLiteral(Keywords(item.Title), dialect),
		series,
		quote(item.ISBN13),
	)
}

// CourseBookStatement links a book to a course and level at the given 1-based position
func CourseBookStatement(cat config.Category, isbn string, position int) string {
	return fmt.Sprintf(
		"INSERT INTO course_books (course_id, book_id, level_id, sequence_order) "+
			"SELECT c.id, b.id, l.id, %d FROM courses c, books b, levels l "+
			"WHERE c.code = %s AND b.isbn = %s AND l.code = %s "+
			"ON CONFLICT DO NOTHING;\n",
		position,
		quote(cat.CourseCode),
		quote(isbn),
		quote(cat.LevelCode),
	)
}

func quote(s string) string {
	return "'" + EscapeText(s) + "'"
}

// keywordsLiteral renders a Postgres text array, or JSON text for SQLite
// which has no array type.
func keywordsLiteral(values []string, dialect Dialect) string {
	if dialect == SQLite {
		data, _ := json.Marshal(values)
		return quote(string(data))
	}

	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]"
}

// formatLevel always keeps one decimal so 0 renders as 0.0
func formatLevel(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
