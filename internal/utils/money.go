package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Prices are fixed-point Bahraini dinar strings ("BD 11.000"). All arithmetic
// happens in fils (thousandths of a dinar) so totals never drift.

const currencyPrefix = "BD"

// ParseFils converts a display price like "BD 11.000" into fils.
// The currency prefix is optional; the fraction may carry up to three digits.
func ParseFils(price string) (int64, error) {
	s := strings.TrimSpace(price)
	s = strings.TrimSpace(strings.TrimPrefix(s, currencyPrefix))
	if s == "" {
		return 0, fmt.Errorf("invalid price %q", price)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if len(frac) > 3 {
		return 0, fmt.Errorf("invalid price %q: more than three decimal places", price)
	}
	// Pad the fraction out to fils precision ("11.5" means 11.500).
	frac += strings.Repeat("0", 3-len(frac))
	if whole == "" {
		whole = "0"
	}

	dinars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dinars < 0 {
		return 0, fmt.Errorf("invalid price %q", price)
	}
	fils := int64(0)
	if frac != "" {
		fils, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q", price)
		}
	}

	return dinars*1000 + fils, nil
}

// FormatFils renders fils as a display price with the BD prefix and
// three decimal places.
func FormatFils(fils int64) string {
	return fmt.Sprintf("%s %d.%03d", currencyPrefix, fils/1000, fils%1000)
}
