package content

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	var tests = []struct {
		in   string
		want time.Time
	}{
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{" 2024-06-01 ", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024/06/01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06-01T10:30:00", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-06-01T10:30", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-06-01 10:30:00", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-06-01T10:30:00Z", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-06-01T12:30:00+02:00", time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"June 1, 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"Jun 1, 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"1 June 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "   ", "yesterday", "2024-13-01", "01/06/2024"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"blog": Blog, "projects": Projects} {
		c, err := ParseCategory(in)
		if err != nil || c != want {
			t.Errorf("ParseCategory(%q) = %q, %v", in, c, err)
		}
	}
	for _, s := range []string{"posts", "", "BLOG", " blog", "Projects"} {
		if _, err := ParseCategory(s); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("Expected ErrInvalidCategory for %q, got %v", s, err)
		}
	}
}

func TestValidID(t *testing.T) {
	for id, want := range map[string]bool{
		"hello-world": true,
		"2024_post":   true,
		"":            false,
		".":           false,
		"..":          false,
		".draft":      false,
		"a/b":         false,
		`a\b`:         false,
	} {
		if got := ValidID(id); got != want {
			t.Errorf("ValidID(%q) = %v, want %v", id, got, want)
		}
	}
}
