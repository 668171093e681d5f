package feed

import (
	"testing"
	"time"
)

func TestParseDateSupportedGrammars(t *testing.T) {
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
	}{
		{"rfc2822 numeric offset", "Mon, 01 Jan 2024 12:00:00 +0000"},
		{"rfc2822 gmt token", "Mon, 01 Jan 2024 12:00:00 GMT"},
		{"rfc2822 ut token", "Mon, 01 Jan 2024 12:00:00 UT"},
		{"iso8601 numeric offset", "2024-01-01T12:00:00+00:00"},
		{"iso8601 zulu", "2024-01-01T12:00:00Z"},
		{"bare iso datetime", "2024-01-01T12:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDate(tc.raw)
			if got == nil {
				t.Fatalf("Expected %q to parse", tc.raw)
			}
			if !got.Equal(want) {
				t.Errorf("Expected %v, got: %v", want, got)
			}
		})
	}
}

func TestParseDateEquivalentGrammarsAgree(t *testing.T) {
	// The same instant encoded in different dialects must normalize to equal
	// canonical values.
	rfc := ParseDate("Mon, 01 Jan 2024 07:00:00 -0500")
	iso := ParseDate("2024-01-01T12:00:00Z")

	if rfc == nil || iso == nil {
		t.Fatal("Expected both dates to parse")
	}
	if !rfc.Equal(*iso) {
		t.Errorf("Expected equal timestamps, got %v and %v", rfc, iso)
	}
}

func TestParseDateReturnsUTC(t *testing.T) {
	ts := ParseDate("2024-06-15T10:30:00+02:00")
	if ts == nil {
		t.Fatal("Expected date to parse")
	}
	if ts.Location() != time.UTC {
		t.Errorf("Expected UTC location, got: %v", ts.Location())
	}
	want := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("Expected %v, got: %v", want, ts)
	}
}

func TestParseDateUnparsableReturnsNil(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"not a date",
		"2024/01/01",
		"01 Jan 2024",
		"Mon Jan 1 12:00:00 2024",
	}

	for _, raw := range cases {
		if got := ParseDate(raw); got != nil {
			t.Errorf("Expected nil for %q, got: %v", raw, got)
		}
	}
}
