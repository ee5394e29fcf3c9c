package transform

import (
	"regexp"
	"strings"
)

const (
	// DefaultBlurb is used when an item has no description
	DefaultBlurb = "A lovely book to read together with your child."

	// DefaultKeyword is used when a title has no alphabetic words
	DefaultKeyword = "book"

	blurbLength = 50
	maxKeywords = 3
	ellipsis    = "..."
)

var (
	nonAlpha      = regexp.MustCompile(`[^a-zA-Z]`)
	parenthesized = regexp.MustCompile(`\((.*?)\)`)
)

// EscapeText doubles single quotes so the value can sit inside a SQL string literal
func EscapeText(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Blurb shortens a description to a one-line teaser.
// Length is counted in characters, not bytes.
func Blurb(description string) string {
	if description == "" {
		return DefaultBlurb
	}

	runes := []rune(description)
	if len(runes) > blurbLength {
		runes = runes[:blurbLength]
	}
	return string(runes) + ellipsis
}

// Keywords derives up to three lowercase keywords from a title.
// Duplicates are dropped keeping the first occurrence.
func Keywords(title string) []string {
	words := strings.Fields(strings.ToLower(nonAlpha.ReplaceAllString(title, " ")))
	if len(words) == 0 {
		return []string{DefaultKeyword}
	}

	seen := make(map[string]bool, len(words))
	keywords := make([]string, 0, maxKeywords)
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
		if len(keywords) == maxKeywords {
			break
		}
	}

	return keywords
}

// SeriesName returns the first parenthesized group of a title, if any
func SeriesName(title string) (string, bool) {
	m := parenthesized.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return m[1], true
}
