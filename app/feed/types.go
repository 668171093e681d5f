package feed

import (
	"time"
)

// Placeholder values used when a document omits a field.
const (
	UntitledFeed = "[Untitled Feed]"
	UntitledPost = "[Untitled Post]"
	NoContent    = "[No content]"
)

// Metadata describes a fetched feed document. PublishedAt is the document's
// reported freshness, resolved through pubDate, lastBuildDate and the Dublin
// Core date in that order; nil when the document carries no usable date.
type Metadata struct {
	Title       string
	Link        string
	Description string
	PublishedAt *time.Time
}

// Candidate is the normalized form of one entry from a freshly fetched
// document, not yet known to be new or duplicate. Fields keep their raw
// absence (empty string, nil date) so the novelty rules can tell a missing
// value from a placeholder.
type Candidate struct {
	Link          string
	Title         string
	Content       string
	Description   string
	EnclosureURL  string
	EnclosureType string
	PublishedAt   *time.Time
}
