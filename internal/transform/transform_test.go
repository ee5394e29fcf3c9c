package transform

import (
	"strings"
	"testing"

	"github.com/readingroadmap/bestsellers/internal/aladin"
	"github.com/readingroadmap/bestsellers/internal/config"
)

var testCategory = config.Category{CategoryID: 11068, CourseCode: "YELLOW_BASIC", LevelCode: "AGE_0"}

func TestBookStatement(t *testing.T) {
	item := aladin.RawItem{
		Title:       "Charlotte's Web (Book 3)",
		Author:      "E. B. White",
		ISBN13:      "9780064400558",
		Description: "Some pig.",
	}

	expected := "INSERT INTO books (title, author, ar_level, mom_tip, key_words, series_name, isbn) " +
		"VALUES ('Charlotte''s Web (Book 3)', 'E. B. White', 0.0, 'Some pig....', ARRAY['charlotte', 's', 'web'], 'Book 3', '9780064400558') " +
		"ON CONFLICT (isbn) DO NOTHING;\n"

	if result := BookStatement(item, Postgres); result != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, result)
	}
}

func TestBookStatementDefaults(t *testing.T) {
	result := BookStatement(aladin.RawItem{Title: "1984", ISBN13: "9780451524935"}, Postgres)

	if !strings.Contains(result, "'"+DefaultBlurb+"'") {
		t.Errorf("Expected default blurb in %s", result)
	}
	if !strings.Contains(result, "ARRAY['book']") {
		t.Errorf("Expected default keyword in %s", result)
	}
	if !strings.Contains(result, ", NULL, '9780451524935')") {
		t.Errorf("Expected NULL series in %s", result)
	}
}

func TestStatementsKeepQuotesBalanced(t *testing.T) {
	items := []aladin.RawItem{
		{Title: "Don't Let the Pigeon Drive the Bus! (Pigeon's Book)", Author: "Mo Willems'", ISBN13: "9780786819881", Description: "It's a pigeon's world, isn't it? ''"},
		{Title: "'", Author: "''", ISBN13: "'"},
	}

	_, pairs := Transform(items, config.Category{CategoryID: 1, CourseCode: "O'NEIL", LevelCode: "L'1"}, Postgres)

	for i, p := range pairs {
		for _, stmt := range []string{p.Book, p.CourseBook} {
			if strings.Count(stmt, "'")%2 != 0 {
				t.Errorf("item %d: unbalanced quotes in %s", i, stmt)
			}
			if !strings.HasSuffix(stmt, ";\n") {
				t.Errorf("item %d: statement not terminated: %s", i, stmt)
			}
		}
	}

	if !strings.Contains(pairs[0].Book, "'Don''t Let the Pigeon Drive the Bus! (Pigeon''s Book)'") {
		t.Errorf("Expected doubled quotes in title, got %s", pairs[0].Book)
	}
	if !strings.Contains(pairs[0].Book, "'Pigeon''s Book'") {
		t.Errorf("Expected escaped series name, got %s", pairs[0].Book)
	}
}

func TestTransform(t *testing.T) {
	items := []aladin.RawItem{
		{Title: "Wonder", Author: "R. J. Palacio", ISBN13: "9780375869020"},
		{Title: "Holes", Author: "Louis Sachar", ISBN13: "9780440414803"},
	}

	records, pairs := Transform(items, testCategory, Postgres)

	if len(records) != 2 || len(pairs) != 2 {
		t.Fatalf("Expected 2 records and 2 pairs, got %d and %d", len(records), len(pairs))
	}

	for i, rec := range records {
		if rec.Title != items[i].Title || rec.ISBN != items[i].ISBN13 {
			t.Errorf("record %d out of order: %+v", i, rec)
		}
		if rec.ARLevel != 0.0 {
			t.Errorf("record %d: expected placeholder AR level, got %v", i, rec.ARLevel)
		}
		if rec.Course != "YELLOW_BASIC" || rec.Level != "AGE_0" {
			t.Errorf("record %d: unexpected course/level %s/%s", i, rec.Course, rec.Level)
		}
	}

	expected := "INSERT INTO course_books (course_id, book_id, level_id, sequence_order) " +
		"SELECT c.id, b.id, l.id, 2 FROM courses c, books b, levels l " +
		"WHERE c.code = 'YELLOW_BASIC' AND b.isbn = '9780440414803' AND l.code = 'AGE_0' " +
		"ON CONFLICT DO NOTHING;\n"
	if pairs[1].CourseBook != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, pairs[1].CourseBook)
	}
	if !strings.Contains(pairs[0].CourseBook, "l.id, 1 FROM") {
		t.Errorf("Expected sequence 1 for first item, got %s", pairs[0].CourseBook)
	}
}

func TestTransformKeepsRawTextInRecords(t *testing.T) {
	records, _ := Transform([]aladin.RawItem{{Title: "Charlotte's Web"}}, testCategory, Postgres)

	if records[0].Title != "Charlotte's Web" {
		t.Errorf("Expected unescaped title in record, got %q", records[0].Title)
	}
}

func TestJoin(t *testing.T) {
	pairs := []StatementPair{
		{Book: "A;\n", CourseBook: "B;\n"},
		{Book: "C;\n", CourseBook: "D;\n"},
	}

	if result := Join(pairs); result != "A;\nB;\nC;\nD;\n" {
		t.Errorf("Join returned %q", result)
	}
	if result := Join(nil); result != "" {
		t.Errorf("Join(nil) returned %q", result)
	}
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.0"},
		{3.2, "3.2"},
		{5, "5.0"},
	}

	for _, tt := range tests {
		if result := formatLevel(tt.input); result != tt.expected {
			t.Errorf("formatLevel(%v) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestBookStatementSQLiteKeywords(t *testing.T) {
	item := aladin.RawItem{Title: "The Very Hungry Caterpillar", ISBN13: "9780399226908"}

	result := BookStatement(item, SQLite)

	if !strings.Contains(result, `, '["the","very","hungry"]', NULL, '9780399226908')`) {
		t.Errorf("Expected JSON keyword text, got %s", result)
	}
	if strings.Contains(result, "ARRAY[") {
		t.Errorf("Expected no array literal for sqlite, got %s", result)
	}
	if strings.Count(result, "'")%2 != 0 {
		t.Errorf("Unbalanced quotes in %s", result)
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		input    string
		expected Dialect
		wantErr  bool
	}{
		{"", Postgres, false},
		{"postgres", Postgres, false},
		{"sqlite", SQLite, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseDialect(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDialect(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("ParseDialect(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
