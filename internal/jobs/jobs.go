// Package jobs is the asynchronous execution collaborator: callers submit
// (worker kind, params) pairs and get back a handle; a worker pool executes
// the work out of the request path and stores the result for later polling
// by job id.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a job is not found.
var ErrNotFound = errors.New("job not found")

// ErrUnknownWorker is returned on submission for an unregistered worker kind.
var ErrUnknownWorker = errors.New("unknown worker kind")

// ErrQueueFull is returned when the work queue cannot take another job.
// Submission never blocks the caller waiting for queue capacity.
var ErrQueueFull = errors.New("job queue full")

// Job statuses. A job moves pending → running → completed|failed.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Handle is what a caller gets back in place of an immediate result.
type Handle struct {
	JobID string `json:"job_id"`
	URL   string `json:"url"`
}

// Job is one unit of submitted work and, eventually, its materialized result.
type Job struct {
	ID         string          `json:"id"`
	Worker     string          `json:"worker"`
	Params     map[string]any  `json:"params"`
	Status     string          `json:"status"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

// WorkerFunc executes one job kind. The returned value is stored as the
// job's result JSON.
type WorkerFunc func(ctx context.Context, params map[string]any) (any, error)

// Repository defines the contract for job storage.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (Job, error)
	MarkRunning(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string, result json.RawMessage) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
}
