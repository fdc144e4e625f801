// Package universe turns a universe file plus a symbol source into the
// concrete list of tickers a run operates on.
package universe

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseFile reads a universe file into an ordered, deduplicated token
// list. One token per line or comma/whitespace separated; lines starting
// with #, // or ; are comments, and inline # / // comments are stripped.
// Tokens are uppercased.
func ParseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("universe: open %s: %w", path, err)
	}
	defer f.Close()

	var tokens []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(stripInlineComment(scanner.Text()))
		if line == "" || isComment(line) {
			continue
		}

		for _, part := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			t := strings.TrimSpace(part)
			if t == "" || isComment(t) {
				continue
			}
			t = strings.ToUpper(t)
			if !seen[t] {
				seen[t] = true
				tokens = append(tokens, t)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("universe: read %s: %w", path, err)
	}
	return tokens, nil
}

func isComment(s string) bool {
	return strings.HasPrefix(s, "#") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, ";")
}

func stripInlineComment(line string) string {
	cut := len(line)
	if i := strings.Index(line, "#"); i >= 0 && i < cut {
		cut = i
	}
	if i := strings.Index(line, "//"); i >= 0 && i < cut {
		cut = i
	}
	return line[:cut]
}
