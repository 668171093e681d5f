package database

import (
	"time"
)

// Feed represents a subscribed feed record in the database. PubDate is the
// newest publish timestamp known to have been merged (the refresh watermark).
type Feed struct {
	ID         int64
	URL        string
	Title      string
	PubDate    time.Time
	Subscribed bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Article represents a stored article. URL is nil for entries that only carry
// a content body (e.g. podcast-only items).
type Article struct {
	ID        int64
	FeedID    int64
	URL       *string
	Read      bool
	PubDate   time.Time
	Content   string
	Title     string
	CreatedAt time.Time
}
