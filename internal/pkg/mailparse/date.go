package mailparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames maps lowercase month names without trailing dots to month
// numbers. Airline emails arrive in the booking locale, so Portuguese,
// Spanish, German and Scandinavian names are covered alongside English.
var monthNames = map[string]time.Month{
	// English
	"jan": 1, "january": 1, "feb": 2, "february": 2, "mar": 3, "march": 3,
	"apr": 4, "april": 4, "may": 5, "jun": 6, "june": 6,
	"jul": 7, "july": 7, "aug": 8, "august": 8, "sep": 9, "sept": 9,
	"september": 9, "oct": 10, "october": 10, "nov": 11, "november": 11,
	"dec": 12, "december": 12,
	// Portuguese
	"fev": 2, "fevereiro": 2, "março": 3, "abr": 4, "abril": 4,
	"mai": 5, "maio": 5, "ago": 8, "agosto": 8, "set": 9, "setembro": 9,
	"out": 10, "outubro": 10, "dez": 12, "dezembro": 12,
	"janeiro": 1, "junho": 6, "julho": 7, "novembro": 11,
	// Spanish
	"ene": 1, "enero": 1, "febrero": 2, "marzo": 3,
	"mayo": 5, "junio": 6, "julio": 7, "septiembre": 9,
	"octubre": 10, "noviembre": 11, "dic": 12, "diciembre": 12,
	// German
	"mär": 3, "märz": 3, "okt": 10, "oktober": 10, "dezember": 12,
	// Scandinavian
	"maj": 5, "marts": 3, "juni": 6, "juli": 7, "augusti": 8,
}

var (
	// "16 de mar. de 2026", "16 Mar 2026"
	dayMonthYearRe = regexp.MustCompile(
		`^(\d{1,2})\s+(?:de\s+)?([A-Za-zÀ-ÿ]+)\.?\s+(?:de\s+)?(\d{4})`)
	// "Mar 16, 2026"
	monthDayYearRe = regexp.MustCompile(
		`^([A-Za-z]+)\s+(\d{1,2}),?\s+(\d{4})`)

	// AnyDateRe matches any supported date form anywhere in free text.
	// Used to locate the closest preceding date when a body pattern does
	// not capture one.
	AnyDateRe = regexp.MustCompile(
		`\d{1,2}\s+(?:de\s+)?[A-Za-zÀ-ÿ]+\.?\s+(?:de\s+)?\d{4}` +
			`|[A-Za-z]+\s+\d{1,2},?\s+\d{4}` +
			`|\d{4}-\d{2}-\d{2}` +
			`|\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4}`)
)

// ParseFlightDate parses a date string that may use localized month
// names: "16 de mar. de 2026", "16 Mar 2026", "Mar 16, 2026",
// "2026-03-16", "16/03/2026". Returns false when nothing matched.
func ParseFlightDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)

	// ISO / numeric formats first.
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006", "02.01.2006", "02-01-2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	if m := dayMonthYearRe.FindStringSubmatch(raw); m != nil {
		if t, ok := buildDate(m[3], m[2], m[1]); ok {
			return t, true
		}
	}

	if m := monthDayYearRe.FindStringSubmatch(raw); m != nil {
		if t, ok := buildDate(m[3], m[1], m[2]); ok {
			return t, true
		}
	}

	// Last resort: common English layouts.
	for _, layout := range []string{"2 Jan 2006", "2 January 2006", "Jan 2, 2006", "January 2, 2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func buildDate(yearStr, monthName, dayStr string) (time.Time, bool) {
	month, ok := monthNames[strings.TrimSuffix(strings.ToLower(monthName), ".")]
	if !ok {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// closestPrecedingDate finds the last parseable date appearing in text
// before the given offset, which is how segment dates are recovered when
// an airline lists the date once above several flight rows.
func closestPrecedingDate(text string, offset int) (time.Time, bool) {
	if offset > len(text) {
		offset = len(text)
	}

	matches := AnyDateRe.FindAllString(text[:offset], -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if t, ok := ParseFlightDate(matches[i]); ok {
			return t, true
		}
	}

	return time.Time{}, false
}
