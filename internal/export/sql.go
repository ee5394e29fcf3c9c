package export

import (
	"fmt"
	"os"
	"strings"
)

// DefaultSQLHeader is the comment written at the top of every generated SQL file
const DefaultSQLHeader = "Generated from the Aladin bestseller API"

// RenderSQL builds the SQL file body: a header comment followed by one block
// per category, each block terminated by an extra newline.
func RenderSQL(header string, blocks []string) string {
	var b strings.Builder
	b.WriteString("-- ")
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, block := range blocks {
		b.WriteString(block)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteSQL writes the rendered SQL to path, replacing any existing file
func WriteSQL(path, header string, blocks []string) error {
	if err := os.WriteFile(path, []byte(RenderSQL(header, blocks)), 0644); err != nil {
		return fmt.Errorf("failed to write SQL file: %w", err)
	}
	return nil
}
