package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository for exercising the lifecycle without a
// database.
type memRepo struct {
	mu   sync.Mutex
	seq  int
	jobs map[string]Job
}

func newMemRepo() *memRepo {
	return &memRepo{jobs: make(map[string]Job)}
}

func (r *memRepo) Create(_ context.Context, job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	job.ID = fmt.Sprintf("job-%d", r.seq)
	job.CreatedAt = time.Now()
	r.jobs[job.ID] = *job
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *memRepo) MarkRunning(_ context.Context, id string) error {
	return r.update(id, func(j *Job) { j.Status = StatusRunning })
}

func (r *memRepo) MarkCompleted(_ context.Context, id string, result json.RawMessage) error {
	now := time.Now()
	return r.update(id, func(j *Job) {
		j.Status = StatusCompleted
		j.Result = result
		j.FinishedAt = &now
	})
}

func (r *memRepo) MarkFailed(_ context.Context, id string, errMsg string) error {
	now := time.Now()
	return r.update(id, func(j *Job) {
		j.Status = StatusFailed
		j.Error = errMsg
		j.FinishedAt = &now
	})
}

func (r *memRepo) update(id string, fn func(*Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}
	fn(&job)
	r.jobs[id] = job
	return nil
}

func waitForStatus(t *testing.T, svc *Service, id, status string) Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := svc.GetByID(context.Background(), id)
		require.NoError(t, err)
		if job.Status == status {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", id, status)
	return Job{}
}

func TestSubmit(t *testing.T) {
	t.Run("returns a handle with a polling URL", func(t *testing.T) {
		svc := NewService(newMemRepo(), "http://localhost:8080", 4)
		svc.RegisterWorker("noop", func(context.Context, map[string]any) (any, error) {
			return nil, nil
		})

		handle, err := svc.Submit(context.Background(), "noop", map[string]any{"author": "X"})

		require.NoError(t, err)
		assert.NotEmpty(t, handle.JobID)
		assert.Equal(t, "http://localhost:8080/api/v1/jobs/"+handle.JobID, handle.URL)

		job, err := svc.GetByID(context.Background(), handle.JobID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, job.Status)
	})

	t.Run("unregistered worker kind is rejected", func(t *testing.T) {
		svc := NewService(newMemRepo(), "http://localhost:8080", 4)

		_, err := svc.Submit(context.Background(), "nope", nil)

		assert.ErrorIs(t, err, ErrUnknownWorker)
	})

	t.Run("full queue fails fast instead of blocking", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, "http://localhost:8080", 1)
		svc.RegisterWorker("noop", func(context.Context, map[string]any) (any, error) {
			return nil, nil
		})
		// Workers never start, so the single queue slot stays occupied.

		_, err := svc.Submit(context.Background(), "noop", nil)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() {
			_, err := svc.Submit(context.Background(), "noop", nil)
			done <- err
		}()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, ErrQueueFull)
		case <-time.After(time.Second):
			t.Fatal("submission blocked on a full queue")
		}

		// The rejected submission's row is failed, not left pending forever.
		job, err := repo.GetByID(context.Background(), "job-2")
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, job.Status)
		assert.Equal(t, ErrQueueFull.Error(), job.Error)
	})
}

func TestExecute(t *testing.T) {
	t.Run("successful run stores the result", func(t *testing.T) {
		svc := NewService(newMemRepo(), "http://localhost:8080", 4)
		svc.RegisterWorker("echo", func(_ context.Context, params map[string]any) (any, error) {
			return map[string]any{"echo": params["value"]}, nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		svc.Start(ctx, 1)

		handle, err := svc.Submit(ctx, "echo", map[string]any{"value": "hi"})
		require.NoError(t, err)

		job := waitForStatus(t, svc, handle.JobID, StatusCompleted)
		assert.JSONEq(t, `{"echo":"hi"}`, string(job.Result))
		assert.NotNil(t, job.FinishedAt)
	})

	t.Run("worker error marks the job failed", func(t *testing.T) {
		svc := NewService(newMemRepo(), "http://localhost:8080", 4)
		svc.RegisterWorker("boom", func(context.Context, map[string]any) (any, error) {
			return nil, errors.New("partner unreachable")
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		svc.Start(ctx, 1)

		handle, err := svc.Submit(ctx, "boom", nil)
		require.NoError(t, err)

		job := waitForStatus(t, svc, handle.JobID, StatusFailed)
		assert.Equal(t, "partner unreachable", job.Error)
		assert.Empty(t, job.Result)
	})

	t.Run("submissions complete independently", func(t *testing.T) {
		svc := NewService(newMemRepo(), "http://localhost:8080", 8)
		svc.RegisterWorker("echo", func(_ context.Context, params map[string]any) (any, error) {
			return params, nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		svc.Start(ctx, 2)

		first, err := svc.Submit(ctx, "echo", map[string]any{"n": "1"})
		require.NoError(t, err)
		second, err := svc.Submit(ctx, "echo", map[string]any{"n": "2"})
		require.NoError(t, err)

		waitForStatus(t, svc, first.JobID, StatusCompleted)
		waitForStatus(t, svc, second.JobID, StatusCompleted)
	})
}
