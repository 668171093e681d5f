package feed

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"feedstash/app/database"
)

// ErrMissingURL marks a programming-invariant violation: a subscribed feed
// must always have a URL.
var ErrMissingURL = errors.New("subscribed feed has no URL")

// Synchronizer runs one feed's lifecycle: fetch, parse, classify, merge.
type Synchronizer struct {
	fetcher  Fetcher
	parser   *Parser
	feeds    database.FeedRepository
	articles database.ArticleRepository
	now      func() time.Time
}

func NewSynchronizer(fetcher Fetcher, parser *Parser,
	feeds database.FeedRepository, articles database.ArticleRepository) *Synchronizer {
	return &Synchronizer{
		fetcher:  fetcher,
		parser:   parser,
		feeds:    feeds,
		articles: articles,
		now:      time.Now,
	}
}

// Subscribe fetches the document at rawURL, stores the feed keyed by URL and
// merges all of its entries. Subscribing twice to the same URL is a no-op for
// the feed row, and the articles' natural key keeps repeated subscribes from
// duplicating entries.
func (s *Synchronizer) Subscribe(ctx context.Context, rawURL string) (*database.Feed, error) {
	url := NormalizeURL(rawURL)
	if url == "" {
		return nil, ErrMissingURL
	}

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	metadata, candidates, err := s.parser.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	fetchedAt := s.now().UTC()

	// A feed with no derivable date still gets a watermark so it is always
	// comparable on refresh.
	watermark := fetchedAt
	if metadata.PublishedAt != nil {
		watermark = *metadata.PublishedAt
	}

	feed, err := s.feeds.InsertFeed(url, cmp.Or(metadata.Title, UntitledFeed), watermark)
	if err != nil {
		return nil, fmt.Errorf("failed to store feed: %w", err)
	}

	articles := make([]database.Article, 0, len(candidates))
	for _, candidate := range candidates {
		articles = append(articles, candidate.Article(feed.ID, fetchedAt))
	}

	inserted, err := s.articles.InsertArticles(articles)
	if err != nil {
		return nil, fmt.Errorf("failed to store articles: %w", err)
	}

	slog.Info("Feed subscribed", "feed", feed.URL, "title", feed.Title, "articles", len(inserted))

	return feed, nil
}

// Refresh re-fetches an existing feed and merges in the entries that are new
// relative to what is already stored. Returns the articles actually inserted,
// possibly none.
func (s *Synchronizer) Refresh(ctx context.Context, feed database.Feed) ([]database.Article, error) {
	if feed.URL == "" {
		return nil, ErrMissingURL
	}

	data, err := s.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	return s.merge(feed, data)
}

// merge classifies the entries of a fetched document against the stored state
// and bulk-inserts the new ones.
func (s *Synchronizer) merge(feed database.Feed, data []byte) ([]database.Article, error) {
	metadata, candidates, err := s.parser.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	// Advisory early exit: a document reporting itself no fresher than the
	// watermark has nothing new. An undated document always proceeds, and
	// skipping can never cause a miss since every entry is classified
	// independently below.
	if metadata.PublishedAt != nil && !metadata.PublishedAt.After(feed.PubDate) {
		slog.Debug("Feed document not newer than watermark, skipping", "feed", feed.URL)
		return nil, nil
	}

	titles, err := s.articles.GetArticleTitles(feed.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing titles: %w", err)
	}
	existing := TitleSet(titles)

	fetchedAt := s.now().UTC()

	var fresh []database.Article
	for _, candidate := range candidates {
		if IsNew(candidate, feed.PubDate, existing) {
			fresh = append(fresh, candidate.Article(feed.ID, fetchedAt))
		}
	}

	inserted, err := s.articles.InsertArticles(fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to store articles: %w", err)
	}

	// The watermark advances only after the merge committed, and only forward.
	if metadata.PublishedAt != nil && metadata.PublishedAt.After(feed.PubDate) {
		if err := s.feeds.UpdateWatermark(feed.ID, *metadata.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to advance watermark: %w", err)
		}
	}

	slog.Debug("Feed refreshed", "feed", feed.URL,
		"entries", len(candidates), "new", len(inserted))

	return inserted, nil
}
