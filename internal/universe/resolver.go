package universe

import (
	"context"
	"fmt"
	"strings"
)

// SymbolFinder expands an index-origin key into its member symbols.
// The Postgres store implements this against the quotes table.
type SymbolFinder interface {
	FindSymbolsByOrigin(ctx context.Context, originKey string) ([]string, error)
}

// Resolve expands the parsed tokens into an ordered, deduplicated symbol
// list. Index tokens (SP500, NASDAQ100 and their spellings) expand via
// the finder; everything else is an explicit ticker. A trailing .US
// suffix is stripped.
func Resolve(ctx context.Context, tokens []string, finder SymbolFinder) ([]string, error) {
	var symbols []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" && !seen[s] {
			seen[s] = true
			symbols = append(symbols, s)
		}
	}

	for _, raw := range tokens {
		t := normalizeToken(raw)
		if t == "" {
			continue
		}

		var origin string
		switch strings.ToUpper(t) {
		case "SP500", "S&P500", "S&P-500":
			origin = "SP500"
		case "NASDAQ100", "NASDAQ-100", "QQQ":
			origin = "NASDAQ100"
		}

		if origin == "" {
			add(t)
			continue
		}

		members, err := finder.FindSymbolsByOrigin(ctx, origin)
		if err != nil {
			return nil, fmt.Errorf("universe: resolve %s: %w", t, err)
		}
		for _, m := range members {
			add(m)
		}
	}
	return symbols, nil
}

// normalizeToken trims and removes a .US suffix.
func normalizeToken(t string) string {
	s := strings.TrimSpace(t)
	if strings.HasSuffix(strings.ToUpper(s), ".US") {
		s = s[:len(s)-3]
	}
	return s
}
