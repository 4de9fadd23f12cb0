// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestValidDOI(t *testing.T) {
	tests := []struct {
		name string
		doi  string
		want bool
	}{
		{"typical DOI", "10.1038/s41586-021-03819-2", true},
		{"short registrant", "10.555/test", true},
		{"missing slash", "10.1038s41586", false},
		{"wrong prefix", "11.1038/s41586", false},
		{"too short", "10.1/a", false},
		{"empty", "", false},
		{"bare URL", "https://example.com/paper", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDOI(tt.doi); got != tt.want {
				t.Errorf("ValidDOI(%q) = %v, want %v", tt.doi, got, tt.want)
			}
		})
	}
}

func TestDOICandidatePriority(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"first valid wins", []string{"10.1000/first", "10.2000/second"}, "10.1000/first"},
		{"invalid skipped", []string{"not-a-doi", "10.2000/second"}, "10.2000/second"},
		{"URL-embedded DOI extracted", []string{"https://doi.org/10.1234/abcd"}, "10.1234/abcd"},
		{"dx.doi.org form", []string{"http://dx.doi.org/10.1234/abcd"}, "10.1234/abcd"},
		{"empty candidates skipped", []string{"", "  ", "10.3000/third"}, "10.3000/third"},
		{"nothing validates", []string{"", "garbage", "https://example.com/x"}, ""},
		{"doi.org URL without DOI", []string{"https://doi.org/not-valid"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DOI(tt.candidates...); got != tt.want {
				t.Errorf("DOI(%v) = %q, want %q", tt.candidates, got, tt.want)
			}
		})
	}
}

func TestYearClamping(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		year int
		want int
	}{
		{"in range", 2021, 2021},
		{"lower bound", 1900, 1900},
		{"current year", 2026, 2026},
		{"future year replaced", 2031, 2026},
		{"pre-1900 replaced", 1899, 2026},
		{"zero replaced", 0, 2026},
		{"negative replaced", -5, 2026},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Year(tt.year, now); got != tt.want {
				t.Errorf("Year(%d) = %d, want %d", tt.year, got, tt.want)
			}
		})
	}
}

func TestYearFromDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
	}{
		{"full date", "2021-03-15", 2021},
		{"bare year", "2019", 2019},
		{"padded", "  2020-01-01", 2020},
		{"too short", "99", 0},
		{"non-numeric", "20ab-01-01", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearFromDate(tt.date); got != tt.want {
				t.Errorf("YearFromDate(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestSurname(t *testing.T) {
	tests := []struct {
		name   string
		author string
		want   string
	}{
		{"given family", "Alice Smith", "Smith"},
		{"three tokens", "Juan Carlos Rivera", "Rivera"},
		{"single token", "Aristotle", "Aristotle"},
		{"trailing whitespace", "Bob Jones  ", "Jones"},
		{"empty", "", Unavailable},
		{"whitespace only", "   ", Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Surname(tt.author); got != tt.want {
				t.Errorf("Surname(%q) = %q, want %q", tt.author, got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	long := "A Very Long Title That Certainly Exceeds The Fifty Character Display Cap"
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"single part", []string{"Deep Learning"}, "Deep Learning"},
		{"multi part joined", []string{"Part One", "Part Two"}, "Part One Part Two"},
		{"blank parts dropped", []string{"", "  ", "Kept"}, "Kept"},
		{"empty falls back", []string{}, Unavailable},
		{"capped at 50", []string{long}, long[:50]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.parts...); got != tt.want {
				t.Errorf("Title(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestTitleCapKeepsMultiByteRunesIntact(t *testing.T) {
	// The 50th character is multi-byte; the cap must not split it.
	title := strings.Repeat("a", 49) + "é, a survey"
	got := Title(title)

	if !utf8.ValidString(got) {
		t.Fatalf("Title() = %q, invalid UTF-8", got)
	}
	if want := strings.Repeat("a", 49) + "é"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{"shorter than cap", "short", 10, "short"},
		{"exact length", "exact", 5, "exact"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"multi-byte cut", "ééééé", 3, "ééé"},
		{"cjk cut", "機械学習の研究", 4, "機械学習"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.s, tt.max)
			if got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("TruncateRunes(%q, %d) produced invalid UTF-8", tt.s, tt.max)
			}
		})
	}
}
