// Package money formats cent amounts for display. Prices are carried as
// int64 cents everywhere; formatting happens only at the presentation edge.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPEN formats an amount in cents as Peruvian soles, e.g. "S/ 89.00".
func FormatPEN(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("S/ %d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// ParseSoles converts a decimal soles string like "89" or "89.50" to cents.
// Used when loading catalog files authored in whole-currency amounts.
func ParseSoles(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("empty amount")
	}
	whole, frac, found := strings.Cut(v, ".")
	cents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", v, err)
	}
	cents *= 100
	if found {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", v, err)
		}
		cents += f
	}
	return cents, nil
}
