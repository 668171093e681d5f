package database

import (
	"time"
)

// FeedRepository defines the storage operations for feeds.
type FeedRepository interface {
	// InsertFeed inserts a feed keyed by URL and returns the stored row.
	// Inserting an already-known URL is a no-op for the feed row, so
	// re-subscribing never creates a second feed.
	InsertFeed(url, title string, pubDate time.Time) (*Feed, error)
	GetFeeds() ([]Feed, error)
	GetSubscribedFeeds() ([]Feed, error)
	GetFeedByID(id int64) (*Feed, error)
	// UpdateWatermark advances the feed's newest-known publish timestamp.
	UpdateWatermark(id int64, pubDate time.Time) error
	// DeleteFeed removes a feed; its articles go with it.
	DeleteFeed(id int64) error
	GetFeedCount() (int, error)
}

// ArticleRepository defines the storage operations for articles.
type ArticleRepository interface {
	// InsertArticles bulk-inserts articles in a single transaction. Rows that
	// collide with the natural uniqueness key are skipped; only the rows
	// actually inserted are returned, with their assigned ids.
	InsertArticles(articles []Article) ([]Article, error)
	GetArticlesByFeed(feedID int64) ([]Article, error)
	GetAllArticles() ([]Article, error)
	GetArticleTitles(feedID int64) ([]string, error)
	SetArticleRead(id int64, read bool) error
	GetArticlesMissingContent(placeholder string, limit int) ([]Article, error)
	UpdateArticleContent(id int64, content string) error
	GetArticleCount() (int, error)
}
