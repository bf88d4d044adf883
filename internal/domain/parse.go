package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// gvizDateRe matches the Google Visualization date literal Date(YYYY,M,D)
	// with a zero-based month, e.g. "Date(2025,2,11)" -> March 11 2025.
	gvizDateRe = regexp.MustCompile(`(?i)^Date\((\d{4})\s*,\s*(\d{1,2})\s*,\s*(\d{1,2})\)$`)

	// isoDateRe matches YYYY-MM-DD and YYYY/MM/DD.
	isoDateRe = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)

	// mdyDateRe matches MM/DD/YYYY and MM-DD-YYYY.
	mdyDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)

	// hemiCoordRe matches "44.96857° N, 93.28427° W" style pairs. The degree
	// sign and the comma are optional and hemisphere letters fold case.
	hemiCoordRe = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*°?\s*([NS])\s*,?\s*(-?\d+(?:\.\d+)?)\s*°?\s*([EW])`)

	// bareCoordRe matches a plain "<num>, <num>" pair read as (lat, lon).
	bareCoordRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)`)

	// thicknessStripRe removes everything a thickness cell may legally carry
	// besides digits, fraction bars, decimal points, and spaces. Free-text
	// cells leak stray punctuation like "8 7/8)".
	thicknessStripRe = regexp.MustCompile(`[^0-9/. ]`)
)

// ParseDate turns loosely formatted spreadsheet date text into a calendar date.
// Patterns are tried in a fixed priority order (Date(Y,M,D) literal, then
// year-first, then month-first) and the first structural match wins, which is
// what disambiguates MM-DD-YYYY from the other separator-delimited triples.
// Unmatched text yields nil, not an error. The result is a UTC midnight
// timestamp; no time-zone shifting is applied to the date itself.
func ParseDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if m := gvizDateRe.FindStringSubmatch(text); m != nil {
		// Zero-based month in the literal.
		return makeDate(atoiOrZero(m[1]), atoiOrZero(m[2])+1, atoiOrZero(m[3]))
	}
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		return makeDate(atoiOrZero(m[1]), atoiOrZero(m[2]), atoiOrZero(m[3]))
	}
	if m := mdyDateRe.FindStringSubmatch(text); m != nil {
		return makeDate(atoiOrZero(m[3]), atoiOrZero(m[1]), atoiOrZero(m[2]))
	}
	return nil
}

func makeDate(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseCoordinates extracts a decimal-degree pair from coordinate text.
// Hemisphere-annotated pairs like "44.96857° N, 93.28427° W" are preferred;
// the hemisphere letter forces the sign (S → negative latitude, W → negative
// longitude) regardless of any sign on the number. Text without hemisphere
// letters falls back to a bare "<num>, <num>" read as (lat, lon). Nil when
// fewer than two numeric tokens are recoverable.
func ParseCoordinates(text string) *Coordinates {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if m := hemiCoordRe.FindStringSubmatch(text); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[3], 64)
		if errLat != nil || errLon != nil {
			return nil
		}
		lat = abs(lat)
		lon = abs(lon)
		if strings.EqualFold(m[2], "S") {
			lat = -lat
		}
		if strings.EqualFold(m[4], "W") {
			lon = -lon
		}
		return &Coordinates{Lat: lat, Lon: lon}
	}

	if m := bareCoordRe.FindStringSubmatch(text); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[2], 64)
		if errLat != nil || errLon != nil {
			return nil
		}
		return &Coordinates{Lat: lat, Lon: lon}
	}

	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ParseThickness extracts a decimal measurement from a thickness cell, in the
// cell's own unit. Accepted shapes after stripping stray punctuation:
//
//	"8.5"     plain decimal
//	"3/8"     fraction (zero denominator yields nil)
//	"5 5/8"   mixed number, whole part plus fraction
//
// Anything else yields nil.
func ParseThickness(text string) *float64 {
	cleaned := thicknessStripRe.ReplaceAllString(text, "")
	tokens := strings.Fields(cleaned)

	switch len(tokens) {
	case 1:
		if strings.Contains(tokens[0], "/") {
			return parseFraction(tokens[0])
		}
		v, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil
		}
		return &v
	case 2:
		whole, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil
		}
		frac := parseFraction(tokens[1])
		if frac == nil {
			return nil
		}
		v := whole + *frac
		return &v
	default:
		return nil
	}
}

// parseFraction parses "N/D" into N/D. Nil for malformed tokens or D == 0.
func parseFraction(token string) *float64 {
	parts := strings.Split(token, "/")
	if len(parts) != 2 {
		return nil
	}
	num, errN := strconv.ParseFloat(parts[0], 64)
	den, errD := strconv.ParseFloat(parts[1], 64)
	if errN != nil || errD != nil || den == 0 {
		return nil
	}
	v := num / den
	return &v
}
