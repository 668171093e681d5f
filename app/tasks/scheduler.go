package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"feedstash/app/cfg"
	"feedstash/app/database"
	"feedstash/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	synchronizer     *feed.Synchronizer
	feedRepo         database.FeedRepository
	articleRepo      database.ArticleRepository
	httpClient       *http.Client
	contentExtractor *feed.ContentExtractor
	userAgent        string
	fetchTimeout     time.Duration
	interval         time.Duration
	workerCount      int
	extractContent   bool
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	taskQueue        chan TaskInterface
}

func NewScheduler(synchronizer *feed.Synchronizer, feedRepo database.FeedRepository,
	articleRepo database.ArticleRepository, httpClient *http.Client,
	contentExtractor *feed.ContentExtractor) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		synchronizer:     synchronizer,
		feedRepo:         feedRepo,
		articleRepo:      articleRepo,
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		userAgent:        cfg.UserAgent,
		fetchTimeout:     time.Duration(cfg.FetchTimeout) * time.Second,
		interval:         time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:      cfg.WorkerCount,
		extractContent:   cfg.ExtractContent,
		ctx:              ctx,
		cancel:           cancel,
		taskQueue:        make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	// The queue is deliberately left open: a late enqueue from the API or a
	// retry goroutine must get an error, not a send-on-closed-channel panic.
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("scheduler stopped: %w", err)
	}

	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueTasks() {
	refreshTask := NewRefreshFeedsTask(s.synchronizer, s.feedRepo)
	if err := s.EnqueueTask(refreshTask); err != nil {
		slog.Warn("Failed to enqueue RefreshFeedsTask", "error", err)
	}

	if s.extractContent {
		extractTask := NewExtractContentTask(s.httpClient, s.contentExtractor,
			s.articleRepo, s.userAgent, s.fetchTimeout)
		if err := s.EnqueueTask(extractTask); err != nil {
			slog.Warn("Failed to enqueue ExtractContentTask", "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID,
			"type", string(task.GetType()), "id", task.GetID(),
			"retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()),
				"retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(),
				"delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry",
						"type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry",
							"type", string(task.GetType()), "id", task.GetID(),
							"retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries",
				"type", string(task.GetType()), "id", task.GetID(),
				"retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(),
				"last_error", err)
		}
	}
}
