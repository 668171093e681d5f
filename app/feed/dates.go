package feed

import (
	"strings"
	"time"
)

// Feeds in the wild emit several non-conformant date dialects. The known
// grammars are tried in order; anything else is treated as "no date" so one
// malformed entry cannot fail a whole sync.
var dateLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700", // RFC 2822 with numeric offset
	"Mon, 02 Jan 2006 15:04:05 MST",   // RFC 2822 with a literal zone token (GMT, UT)
	time.RFC3339,                      // ISO 8601 with numeric offset
	"2006-01-02T15:04:05",             // bare ISO datetime, no zone
}

// ParseDate parses a raw date string into a canonical UTC timestamp. Returns
// nil for empty or unrecognized input, never an error.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	// Go layout zone tokens need at least three letters, so the RFC 2822 "UT"
	// zone cannot be expressed in a layout string. Rewrite it to UTC up front.
	if strings.HasSuffix(raw, " UT") {
		raw += "C"
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			utc := ts.UTC()
			return &utc
		}
	}

	return nil
}
