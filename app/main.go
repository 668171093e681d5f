package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedstash/app/api"
	"feedstash/app/cfg"
	"feedstash/app/config"
	"feedstash/app/database"
	"feedstash/app/feed"
	"feedstash/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting Feedstash server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	feedRepo := database.NewFeedRepository(db)
	articleRepo := database.NewArticleRepository(db)

	httpClient := &http.Client{}
	fetchTimeout := time.Duration(appCfg.FetchTimeout) * time.Second
	fetcher := feed.NewHTTPFetcher(httpClient, appCfg.UserAgent, fetchTimeout)
	synchronizer := feed.NewSynchronizer(fetcher, feed.NewParser(), feedRepo, articleRepo)

	seedSubscriptions(synchronizer, appCfg.SeedFile)

	contentExtractor := feed.NewContentExtractor()

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount,
		"interval", appCfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(synchronizer, feedRepo, articleRepo, httpClient, contentExtractor)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(feedRepo, articleRepo, synchronizer, scheduler)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

// seedSubscriptions subscribes to every URL listed in the seed file.
// Subscribing is idempotent so re-running with the same file never duplicates
// feeds; individual failures are logged and skipped.
func seedSubscriptions(synchronizer *feed.Synchronizer, seedFile string) {
	if seedFile == "" {
		return
	}

	subs, err := config.NewLoader(seedFile).Load()
	if err != nil {
		slog.Error("Failed to load seed file", "path", seedFile, "error", err)
		os.Exit(1)
	}
	if len(subs.Feeds) == 0 {
		return
	}

	slog.Info("Seeding subscriptions", "path", seedFile, "feeds", len(subs.Feeds))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	subscribed := 0
	for _, url := range subs.Feeds {
		if _, err := synchronizer.Subscribe(ctx, url); err != nil {
			slog.Warn("Failed to subscribe to seed feed", "url", url, "error", err)
			continue
		}
		subscribed++
	}
	slog.Info("Seed subscriptions complete", "subscribed", subscribed, "total", len(subs.Feeds))
}
