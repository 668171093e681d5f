package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"feedstash/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.POST("/feeds", handler.Subscribe)
		api.GET("/feeds", handler.ListFeeds)
		api.DELETE("/feeds/:id", handler.Unsubscribe)
		api.GET("/feeds/:id/articles", handler.GetFeedArticles)
		api.GET("/articles", handler.ListArticles)
		api.PATCH("/articles/:id/read", handler.SetRead)
		api.POST("/refresh", handler.RefreshFeeds)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Feedstash",
			"version":     cfg.GetVersion(),
			"description": "Personal feed aggregator with normalization and deduplication",
			"endpoints": map[string]string{
				"subscribe":   "/api/feeds (POST)",
				"feeds":       "/api/feeds",
				"unsubscribe": "/api/feeds/<id> (DELETE)",
				"articles":    "/api/articles",
				"refresh":     "/api/refresh (POST)",
				"health":      "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
