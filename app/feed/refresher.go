package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"feedstash/app/database"
)

// RefreshResult reports one feed's outcome within a batch refresh.
type RefreshResult struct {
	Feed     database.Feed
	Inserted []database.Article
	Err      error
}

// RefreshAll refreshes every given feed. All network fetches are issued
// together; each document is then parsed and merged sequentially once its
// bytes arrive, since the store is the only shared resource. A single feed's
// failure is recorded in its result and never aborts the batch.
func (s *Synchronizer) RefreshAll(ctx context.Context, feeds []database.Feed) []RefreshResult {
	results := make([]RefreshResult, len(feeds))
	payloads := make([][]byte, len(feeds))

	var wg sync.WaitGroup
	for i, feed := range feeds {
		results[i].Feed = feed

		if feed.URL == "" {
			results[i].Err = ErrMissingURL
			continue
		}

		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			data, err := s.fetcher.Fetch(ctx, url)
			if err != nil {
				results[i].Err = fmt.Errorf("failed to fetch feed: %w", err)
				return
			}
			payloads[i] = data
		}(i, feed.URL)
	}
	wg.Wait()

	for i := range results {
		if results[i].Err != nil {
			continue
		}

		inserted, err := s.merge(results[i].Feed, payloads[i])
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Inserted = inserted
	}

	for _, result := range results {
		if result.Err != nil {
			slog.Warn("Feed refresh failed", "feed", result.Feed.URL, "error", result.Err)
		}
	}

	return results
}
