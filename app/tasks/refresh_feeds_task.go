package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"feedstash/app/database"
	"feedstash/app/feed"
)

// RefreshFeedsTask refreshes every subscribed feed in one batch. Per-feed
// failures are reported in the batch results and never fail the task itself;
// only a storage failure on the feed listing is returned (and retried).
type RefreshFeedsTask struct {
	Task
	synchronizer *feed.Synchronizer
	feedRepo     database.FeedRepository
}

func NewRefreshFeedsTask(synchronizer *feed.Synchronizer, feedRepo database.FeedRepository) *RefreshFeedsTask {
	return &RefreshFeedsTask{
		Task:         NewTask(TaskTypeRefreshFeeds),
		synchronizer: synchronizer,
		feedRepo:     feedRepo,
	}
}

func (t *RefreshFeedsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	feeds, err := t.feedRepo.GetSubscribedFeeds()
	if err != nil {
		return fmt.Errorf("failed to list subscribed feeds: %w", err)
	}

	if len(feeds) == 0 {
		slog.Debug("No subscribed feeds to refresh")
		return nil
	}

	results := t.synchronizer.RefreshAll(ctx, feeds)

	newCount := 0
	failedCount := 0
	for _, result := range results {
		if result.Err != nil {
			failedCount++
			continue
		}
		newCount += len(result.Inserted)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"feeds", len(feeds),
		"new", newCount,
		"failed", failedCount)

	return nil
}
