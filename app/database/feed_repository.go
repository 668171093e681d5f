package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ FeedRepository = (*feedRepository)(nil)

type feedRepository struct {
	db *DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *DB) FeedRepository {
	return &feedRepository{db: db}
}

const feedColumns = `id, url, title, pub_date, subscribed, created_at, updated_at`

func (r *feedRepository) InsertFeed(url, title string, pubDate time.Time) (*Feed, error) {
	// Insert and lookup run in one transaction so a mid-merge failure cannot
	// leave a feed row without a recoverable id.
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO feeds (url, title, pub_date)
		VALUES (?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`, url, title, pubDate.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert feed: %w", err)
	}

	row := tx.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE url = ?`, url)
	feed, err := scanFeed(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back feed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit feed insert: %w", err)
	}

	return feed, nil
}

func (r *feedRepository) GetFeeds() ([]Feed, error) {
	return r.queryFeeds(`SELECT ` + feedColumns + ` FROM feeds ORDER BY id`)
}

func (r *feedRepository) GetSubscribedFeeds() ([]Feed, error) {
	return r.queryFeeds(`SELECT ` + feedColumns + ` FROM feeds WHERE subscribed = 1 ORDER BY id`)
}

func (r *feedRepository) GetFeedByID(id int64) (*Feed, error) {
	row := r.db.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE id = ?`, id)
	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return feed, nil
}

func (r *feedRepository) UpdateWatermark(id int64, pubDate time.Time) error {
	_, err := r.db.Exec(`
		UPDATE feeds
		SET pub_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, pubDate.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update watermark: %w", err)
	}
	return nil
}

func (r *feedRepository) DeleteFeed(id int64) error {
	// articles go with the feed via ON DELETE CASCADE
	result, err := r.db.Exec(`DELETE FROM feeds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete feed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *feedRepository) GetFeedCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM feeds`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get feed count: %w", err)
	}
	return count, nil
}

func (r *feedRepository) queryFeeds(query string) ([]Feed, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feeds: %w", err)
	}
	defer rows.Close()

	var feeds []Feed
	for rows.Next() {
		var feed Feed
		err := rows.Scan(&feed.ID, &feed.URL, &feed.Title, &feed.PubDate,
			&feed.Subscribed, &feed.CreatedAt, &feed.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		feeds = append(feeds, feed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return feeds, nil
}

func scanFeed(row *sql.Row) (*Feed, error) {
	var feed Feed
	err := row.Scan(&feed.ID, &feed.URL, &feed.Title, &feed.PubDate,
		&feed.Subscribed, &feed.CreatedAt, &feed.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &feed, nil
}
