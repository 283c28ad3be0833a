package transform

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// MerchantKey collapses a free-text description into a grouping key so
// that case, whitespace, and punctuation variants of the same merchant
// ("SWIGGY*ORDER123", "swiggy  order123") aggregate into one bucket.
// Accented characters fold to their base form before lowercasing.
func MerchantKey(description string) string {
	// Normalize unicode (e.g., accented characters)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, description)
	if err != nil {
		normalized = description
	}

	key := strings.ToLower(normalized)
	key = nonAlnum.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}
