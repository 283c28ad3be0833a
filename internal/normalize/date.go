package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrNotADate indicates the cell is not plausibly a date. Plausibility is
// checked before any layout is attempted so that fuzzy layout resolution
// only ever resolves genuine format ambiguity; it never invents a date
// from non-date text.
var ErrNotADate = errors.New("not a date")

// Locale fixes how ambiguous numeric dates are read. The preference is
// configured once per request, never guessed per row: two adjacent rows
// must always agree on format.
type Locale string

const (
	// LocaleDayFirst reads "05/06/2023" as the 5th of June.
	LocaleDayFirst Locale = "day-first"
	// LocaleMonthFirst reads "05/06/2023" as the 6th of May.
	LocaleMonthFirst Locale = "month-first"
)

// ParseLocale validates a locale string from config or flags.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleDayFirst:
		return LocaleDayFirst, nil
	case LocaleMonthFirst:
		return LocaleMonthFirst, nil
	default:
		return "", fmt.Errorf("invalid locale %q (must be %q or %q)", s, LocaleDayFirst, LocaleMonthFirst)
	}
}

var (
	numericDateShape = regexp.MustCompile(`^\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}$`)
	dayMonthShape    = regexp.MustCompile(`^\d{1,2}[ -][A-Za-z]{3,9}[ ,-]+\d{2,4}$`)
	monthDayShape    = regexp.MustCompile(`^[A-Za-z]{3,9}[ -]\d{1,2},?[ -]\d{2,4}$`)
)

// LooksLikeDate reports whether a cell plausibly holds a calendar date.
// Used for column detection before the full parse runs.
func LooksLikeDate(cell string) bool {
	cell = strings.TrimSpace(cell)
	if len(cell) < 6 || len(cell) > 20 {
		return false
	}
	return numericDateShape.MatchString(cell) ||
		dayMonthShape.MatchString(cell) ||
		monthDayShape.MatchString(cell)
}

// Layout sets per locale. The preferred locale's layouts come first;
// layouts of the opposite order remain as fallbacks so unambiguous values
// (e.g. "13/01/2023" under month-first, where 13 cannot be a month) still
// resolve. Genuinely ambiguous values are always read in the preferred
// order because it is tried first.
var (
	dayFirstLayouts = []string{
		"02/01/2006", "02-01-2006", "02.01.2006",
		"2/1/2006", "2-1-2006",
		"02/01/06", "02-01-06", "2/1/06",
		"2 Jan 2006", "02 Jan 2006", "2 Jan 06", "02 Jan 06",
		"2 January 2006", "02 January 2006",
		"2-Jan-2006", "02-Jan-2006", "2-Jan-06", "02-Jan-06",
	}
	monthFirstLayouts = []string{
		"01/02/2006", "01-02-2006", "01.02.2006",
		"1/2/2006", "1-2-2006",
		"01/02/06", "01-02-06", "1/2/06",
		"Jan 2, 2006", "Jan 2 2006", "Jan 02 2006", "January 2, 2006",
		"Jan-2-2006", "Jan-02-2006",
	}
	// ISO layouts are unambiguous and shared by both locales.
	isoLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
	}
)

// Date converts a raw date string into a canonical calendar date (midnight
// UTC, no time component) under the configured locale. Strings that are
// not plausibly dates fail with ErrNotADate before any layout is tried.
func Date(raw string, locale Locale) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if !LooksLikeDate(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNotADate, raw)
	}

	layouts := make([]string, 0, len(isoLayouts)+len(dayFirstLayouts)+len(monthFirstLayouts))
	layouts = append(layouts, isoLayouts...)
	switch locale {
	case LocaleMonthFirst:
		layouts = append(layouts, monthFirstLayouts...)
		layouts = append(layouts, dayFirstLayouts...)
	default:
		layouts = append(layouts, dayFirstLayouts...)
		layouts = append(layouts, monthFirstLayouts...)
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 1950 || t.Year() > 2100 {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrNotADate, raw)
}
