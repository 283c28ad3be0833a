// Package normalize converts raw statement cells into canonical values.
// It owns the two field normalizers (amounts, dates) and the content-shape
// checks the messy-layout strategy uses to locate columns.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoAmount indicates the cell contains no parsable digits. Callers must
// treat this differently from a zero amount: an unparsable cell invalidates
// the row, a zero amount does not.
var ErrNoAmount = errors.New("no parsable amount")

// currencyPrefixes are textual currency markers stripped before parsing.
// Symbol runes (₹, $, €, £, ¥) are dropped by the digit filter below.
var currencyPrefixes = []string{"RS.", "RS", "INR", "USD", "EUR", "GBP"}

var amountShape = regexp.MustCompile(`^\(?[-+]?\s*[₹$€£¥]?\s*(Rs\.?|INR)?\s*\d+(,\d{2,3})*(\.\d+)?\s*\)?\s*([DdCc][Rr])?\.?$`)

// LooksLikeAmount reports whether a cell plausibly holds a currency amount.
// It is a cheap shape check used for column detection, not a parse.
func LooksLikeAmount(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	return amountShape.MatchString(cell)
}

// Amount converts a raw currency string into a signed decimal value.
//
// Handling: currency symbols and thousands separators are stripped;
// parenthesized values and trailing "Dr" markers are negative; trailing
// "Cr" markers are positive. The signed return reports whether the source
// carried an explicit direction (sign, parentheses, or Dr/Cr marker) so
// callers know when direction still has to be inferred from context.
//
// An empty or all-symbol string returns ErrNoAmount, never zero.
func Amount(raw string) (value decimal.Decimal, signed bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false, ErrNoAmount
	}

	negative := false

	// Parenthesized values denote negatives: "(350.00)"
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		signed = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Trailing Dr/Cr markers: "1,250.00 Dr"
	upper := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(s), "."))
	switch {
	case strings.HasSuffix(upper, "DR"):
		negative = true
		signed = true
		s = strings.TrimSpace(s[:len(s)-len(s[strings.LastIndex(upper, "DR"):])])
	case strings.HasSuffix(upper, "CR"):
		signed = true
		s = strings.TrimSpace(s[:len(s)-len(s[strings.LastIndex(upper, "CR"):])])
	}

	// Textual currency prefixes: "Rs. 1,250.00"
	upper = strings.ToUpper(s)
	for _, prefix := range currencyPrefixes {
		if strings.HasPrefix(upper, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}

	// Keep digits, the decimal point, and sign markers. Everything else
	// (currency runes, thousands separators, stray whitespace) is formatting.
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '+':
			return r
		default:
			return -1
		}
	}, s)

	if !strings.ContainsAny(cleaned, "0123456789") {
		return decimal.Zero, false, ErrNoAmount
	}
	if strings.Count(cleaned, ".") > 1 {
		return decimal.Zero, false, fmt.Errorf("%w: multiple decimal points in %q", ErrNoAmount, raw)
	}
	if strings.HasPrefix(cleaned, "-") || strings.HasPrefix(cleaned, "+") {
		signed = true
	}

	value, parseErr := decimal.NewFromString(cleaned)
	if parseErr != nil {
		return decimal.Zero, false, fmt.Errorf("%w: %q", ErrNoAmount, raw)
	}

	if negative {
		value = value.Abs().Neg()
	}
	return value, signed, nil
}
