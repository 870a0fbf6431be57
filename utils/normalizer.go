package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanCell trims a cell and collapses embedded newlines and whitespace runs
// into single spaces.
func CleanCell(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// ParseAmount converts a monetary cell into a decimal. Anything that cannot
// be parsed is zero.
func ParseAmount(s string, f NumberFormat) decimal.Decimal {
	d, _ := ParseAmountOK(s, f)
	return d
}

// ParseAmountOK is ParseAmount that also reports whether the cell held a
// parseable number. A false result always comes with a zero value.
func ParseAmountOK(s string, f NumberFormat) (decimal.Decimal, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == f.Decimal:
			b.WriteByte('.')
		case r == '-':
			b.WriteByte('-')
		}
		// thousands separators and stray text are dropped
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseDays parses a day-count cell in integer mode.
func ParseDays(s string, f NumberFormat) decimal.Decimal {
	return ParseAmount(s, f).Truncate(0)
}

// IsNumericCell reports whether a cell looks like a number.
func IsNumericCell(s string, h Heuristics) bool {
	s = CleanCell(s)
	return s != "" && h.NumericPattern.MatchString(s)
}

// IsPlaceholderCell reports whether a cell is a dash standing in for zero.
func IsPlaceholderCell(s string, h Heuristics) bool {
	s = CleanCell(s)
	return s != "" && h.PlaceholderPattern != nil && h.PlaceholderPattern.MatchString(s)
}
