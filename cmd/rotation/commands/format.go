package commands

import (
	"fmt"
	"strings"
)

// formatMoney renders 1234567.89 as "1,234,567.89".
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}
