package dbload

import "strings"

// SplitStatements splits a SQL script into individual statements.
// Semicolons and "--" inside single-quoted literals are left alone;
// line comments and empty statements are dropped. The script is walked
// byte by byte so non-ASCII text is copied through untouched.
func SplitStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
		inQuote    bool
		inComment  bool
	)

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]

		if inComment {
			if c == '\n' {
				inComment = false
				current.WriteByte(c)
			}
			continue
		}

		switch {
		case c == '\'':
			// a doubled quote toggles twice and stays inside the literal
			inQuote = !inQuote
			current.WriteByte(c)
		case !inQuote && c == '-' && i+1 < len(script) && script[i+1] == '-':
			inComment = true
			i++
		case !inQuote && c == ';':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return statements
}
