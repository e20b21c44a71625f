package cleaner

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// exactLayouts are tried in order against the whole trimmed input; the first
// full match wins. The order is an ambiguity-resolution policy: MM/DD/YYYY
// takes precedence over DD/MM/YYYY, so "03/04/2024" reads as March 4th.
// Unpadded layout elements accept both "3/4/2024" and "03/04/2024".
var exactLayouts = []string{
	"2006-1-2",        // YYYY-MM-DD
	"2006/1/2",        // YYYY/MM/DD
	"1/2/2006",        // MM/DD/YYYY
	"2/1/2006",        // DD/MM/YYYY
	"2-1-2006",        // DD-MM-YYYY
	"2.1.2006",        // DD.MM.YYYY
	"1-2-2006",        // MM-DD-YYYY
	"January 2, 2006", // Month DD, YYYY
	"Jan 2, 2006",     // Mon DD, YYYY
	"2 January 2006",  // DD Month YYYY
	"2 Jan 2006",      // DD Mon YYYY
}

// Loose fallback patterns, searched anywhere in the string when no exact
// layout matches.
var (
	dayFirstPattern   = regexp.MustCompile(`(?i)(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{4})`)
	monthFirstPattern = regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})`)
)

// monthNumbers maps the first three letters of an English month name to its
// number. Unknown prefixes deliberately fall back to January rather than
// failing; see TestStandardizeDate_UnknownMonthDefaultsToJanuary.
var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func monthNumber(name string) int {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}

	if n, ok := monthNumbers[key]; ok {
		return n
	}

	return 1
}

// dateStrategy attempts one way of reading a date out of a trimmed string.
type dateStrategy func(string) (time.Time, bool)

// dateStrategies encodes the full parse precedence: exact layouts first,
// then the loose day-month-year search, then the loose month-day-year
// search. The first strategy to succeed decides the result.
var dateStrategies = []dateStrategy{
	parseExactLayouts,
	parseDayMonthYear,
	parseMonthDayYear,
}

// DateStandardizer converts many external date spellings into canonical
// zero-padded YYYY-MM-DD form.
type DateStandardizer struct{}

// NewDateStandardizer creates a new date standardizer instance.
func NewDateStandardizer() *DateStandardizer {
	return &DateStandardizer{}
}

// Standardize parses input against the strategy list and returns the ISO
// date along with true on success. Unparseable input returns ("", false);
// the caller decides whether to keep the original text.
func (d *DateStandardizer) Standardize(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	for _, attempt := range dateStrategies {
		if t, ok := attempt(trimmed); ok {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

func parseExactLayouts(s string) (time.Time, bool) {
	for _, layout := range exactLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseDayMonthYear(s string) (time.Time, bool) {
	m := dayFirstPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])

	return calendarDate(year, monthNumber(m[2]), day)
}

func parseMonthDayYear(s string) (time.Time, bool) {
	m := monthFirstPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	return calendarDate(year, monthNumber(m[1]), day)
}

// calendarDate rejects triples that do not name a real Gregorian date, such
// as February 30th or day 29 in a non-leap February.
func calendarDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}

	return t, true
}
