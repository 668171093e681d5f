package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"feedstash/app/database"
	"feedstash/app/feed"
	"feedstash/app/tasks"
)

func NewHandler(feedRepo database.FeedRepository, articleRepo database.ArticleRepository,
	synchronizer *feed.Synchronizer, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		feedRepo:     feedRepo,
		articleRepo:  articleRepo,
		synchronizer: synchronizer,
		scheduler:    scheduler,
	}
}

// Subscribe fetches the requested feed synchronously so the response carries
// the stored feed row. Subscribing to an already-known URL returns the
// existing row.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feed URL"})
		return
	}

	stored, err := h.synchronizer.Subscribe(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, feed.ErrMissingURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feed URL"})
			return
		}
		slog.Error("Subscription failed", "url", req.URL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to subscribe to feed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, newFeedResponse(*stored))
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feed id"})
		return
	}

	if err := h.feedRepo.DeleteFeed(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
			return
		}
		slog.Error("Database error", "operation", "delete_feed", "feed_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListFeeds(c *gin.Context) {
	stored, err := h.feedRepo.GetFeeds()
	if err != nil {
		slog.Error("Database error", "operation", "get_feeds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	feeds := make([]feedResponse, 0, len(stored))
	for _, f := range stored {
		feeds = append(feeds, newFeedResponse(f))
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds": feeds,
		"total": len(feeds),
	})
}

func (h *Handler) GetFeedArticles(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feed id"})
		return
	}

	stored, err := h.feedRepo.GetFeedByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "feed_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if stored == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	articles, err := h.articleRepo.GetArticlesByFeed(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_articles", "feed_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	payload := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		payload = append(payload, newArticleResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"feed":     newFeedResponse(*stored),
		"articles": payload,
		"total":    len(payload),
	})
}

func (h *Handler) ListArticles(c *gin.Context) {
	articles, err := h.articleRepo.GetAllArticles()
	if err != nil {
		slog.Error("Database error", "operation", "get_all_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	payload := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		payload = append(payload, newArticleResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": payload,
		"total":    len(payload),
	})
}

func (h *Handler) SetRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	var req readRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.articleRepo.SetArticleRead(id, req.Read); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		slog.Error("Database error", "operation", "set_article_read", "article_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "read": req.Read})
}

// RefreshFeeds enqueues a batch refresh instead of running it inline; the
// worker pool picks it up and the response only confirms the enqueue.
func (h *Handler) RefreshFeeds(c *gin.Context) {
	task := tasks.NewRefreshFeedsTask(h.synchronizer, h.feedRepo)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing refresh task", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to enqueue refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		health["feeds"] = feedCount
	}
	if articleCount, err := h.articleRepo.GetArticleCount(); err == nil {
		health["articles"] = articleCount
	}

	c.JSON(http.StatusOK, health)
}
