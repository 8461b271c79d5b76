package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary field from an export. Accepted shapes:
//
//	30000        1234567.89      1.234.567,89
//	Rp 30.000    1,234,567.89    30.000,-
//
// A separator followed by exactly three digits is read as a grouping
// separator; anything shorter is the decimal mark. When both separators
// appear, the rightmost one is the decimal mark.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimPrefix(s, "rp")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, ",-")
	if s == "" || s == "-" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// 1.234.567,89
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// 1,234,567.89
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if len(s)-lastComma-1 == 3 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case lastDot >= 0:
		if len(s)-lastDot-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", s, err)
	}
	return d, nil
}

// ParseQuantity parses an integer quantity field.
func ParseQuantity(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", s, err)
	}
	return n, nil
}
