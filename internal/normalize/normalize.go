// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps heterogeneous API metadata into the common
// PaperRecord field shapes: validated DOIs, clamped years, lead-author
// surnames, and display-ready titles.
package normalize

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Unavailable is the display fallback when a source carries no usable
// title or author. DOIs never get a placeholder; an absent DOI stays empty.
const Unavailable = "Data unavailable"

const (
	minYear       = 1900
	titleMaxChars = 50
)

// ValidDOI reports whether s looks like a DOI: the "10." prefix, a
// slash separating registrant and suffix, and more than 7 characters.
func ValidDOI(s string) bool {
	return len(s) > 7 && strings.HasPrefix(s, "10.") && strings.Contains(s, "/")
}

// DOI returns the first candidate that passes validation, checking
// candidates in priority order. URL-shaped candidates are reduced to
// the bare DOI first. Returns "" when nothing validates.
func DOI(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if d := doiFromURL(c); d != "" {
			return d
		}
		if ValidDOI(c) {
			return c
		}
	}
	return ""
}

// doiFromURL extracts a bare DOI embedded in a doi.org URL.
func doiFromURL(s string) string {
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/"} {
		if strings.HasPrefix(s, prefix) {
			d := strings.TrimPrefix(s, prefix)
			if ValidDOI(d) {
				return d
			}
			return ""
		}
	}
	return ""
}

// Year clamps a publication year to [1900, current year]. Out-of-range
// and missing (zero) values are replaced with the current year so a
// future year is never shown.
func Year(year int, now time.Time) int {
	if year < minYear || year > now.Year() {
		return now.Year()
	}
	return year
}

// YearFromDate parses the leading year out of a date string such as
// "2021-03-15" or "2021". Returns 0 when no four-digit year leads the
// string.
func YearFromDate(s string) int {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0
	}
	year := 0
	for _, r := range s[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// Surname reduces a full author name to the trailing surname token.
// "Given family" forms (Semantic Scholar, CORE) take the last token;
// an empty name falls back to Unavailable.
func Surname(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return Unavailable
	}
	return fields[len(fields)-1]
}

// Title flattens a possibly multi-part title into one trimmed string
// capped at 50 characters. Empty titles fall back to Unavailable.
func Title(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	title := strings.Join(kept, " ")
	if title == "" {
		return Unavailable
	}
	return TruncateRunes(title, titleMaxChars)
}

// TruncateRunes caps s at max characters, cutting on a rune boundary so
// multi-byte characters are never split.
func TruncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
