package api

import (
	"time"

	"feedstash/app/database"
	"feedstash/app/feed"
	"feedstash/app/tasks"
)

type Handler struct {
	feedRepo     database.FeedRepository
	articleRepo  database.ArticleRepository
	synchronizer *feed.Synchronizer
	scheduler    tasks.TaskSchedulerInterface
}

type subscribeRequest struct {
	URL string `json:"url" binding:"required"`
}

type readRequest struct {
	Read bool `json:"read"`
}

type feedResponse struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	PubDate   time.Time `json:"pub_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type articleResponse struct {
	ID      int64     `json:"id"`
	FeedID  int64     `json:"feed_id"`
	URL     *string   `json:"url"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Read    bool      `json:"read"`
	PubDate time.Time `json:"pub_date"`
}

func newFeedResponse(f database.Feed) feedResponse {
	return feedResponse{
		ID:        f.ID,
		URL:       f.URL,
		Title:     f.Title,
		PubDate:   f.PubDate,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func newArticleResponse(a database.Article) articleResponse {
	return articleResponse{
		ID:      a.ID,
		FeedID:  a.FeedID,
		URL:     a.URL,
		Title:   a.Title,
		Content: a.Content,
		Read:    a.Read,
		PubDate: a.PubDate,
	}
}
