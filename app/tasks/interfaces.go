package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API layer to manage background
// processing: the scheduler owns the worker pool and the periodic refresh
// ticker, and accepts on-demand tasks through EnqueueTask.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
