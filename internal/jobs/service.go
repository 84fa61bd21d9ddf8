package jobs

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Service implements the two-method collaborator contract (submit work,
// fetch the result by handle) plus the worker pool that executes submitted
// jobs out of line. Submission only persists a pending row and enqueues the
// id; all partner I/O happens on the workers.
type Service struct {
	repo    Repository
	baseURL string
	queue   chan string

	mu      sync.RWMutex
	workers map[string]WorkerFunc
}

func NewService(repo Repository, baseURL string, queueSize int) *Service {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Service{
		repo:    repo,
		baseURL: baseURL,
		queue:   make(chan string, queueSize),
		workers: make(map[string]WorkerFunc),
	}
}

// RegisterWorker binds a worker kind to its executor. Registration happens
// at startup, before Start.
func (s *Service) RegisterWorker(kind string, fn WorkerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers[kind] = fn
}

func (s *Service) worker(kind string) (WorkerFunc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn, ok := s.workers[kind]
	return fn, ok
}

// Submit persists a pending job and hands back its handle immediately. The
// job runs on a worker goroutine; two submissions may complete in either
// order.
func (s *Service) Submit(ctx context.Context, worker string, params map[string]any) (Handle, error) {
	if _, ok := s.worker(worker); !ok {
		return Handle{}, ErrUnknownWorker
	}

	job := &Job{Worker: worker, Params: params, Status: StatusPending}
	if err := s.repo.Create(ctx, job); err != nil {
		return Handle{}, err
	}

	// A full queue fails the submission instead of stalling the request.
	// The persisted row is marked failed so no orphaned pending job remains.
	select {
	case s.queue <- job.ID:
	default:
		if err := s.repo.MarkFailed(ctx, job.ID, ErrQueueFull.Error()); err != nil {
			log.Printf("jobs: mark failed %s: %v", job.ID, err)
		}
		return Handle{}, ErrQueueFull
	}
	return Handle{JobID: job.ID, URL: s.baseURL + "/api/v1/jobs/" + job.ID}, nil
}

// GetByID serves polling for a submitted job's status and result.
func (s *Service) GetByID(ctx context.Context, id string) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

// Start launches n workers that drain the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context, n int) {
	if n <= 0 {
		n = 2
	}
	for i := 0; i < n; i++ {
		go s.run(ctx)
	}
}

func (s *Service) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-s.queue:
			s.execute(ctx, id)
		}
	}
}

func (s *Service) execute(ctx context.Context, id string) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Printf("jobs: load %s: %v", id, err)
		return
	}

	fn, ok := s.worker(job.Worker)
	if !ok {
		_ = s.repo.MarkFailed(ctx, id, ErrUnknownWorker.Error())
		return
	}

	if err := s.repo.MarkRunning(ctx, id); err != nil {
		log.Printf("jobs: mark running %s: %v", id, err)
		return
	}

	result, err := fn(ctx, job.Params)
	if err != nil {
		if markErr := s.repo.MarkFailed(ctx, id, err.Error()); markErr != nil {
			log.Printf("jobs: mark failed %s: %v", id, markErr)
		}
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		_ = s.repo.MarkFailed(ctx, id, "encode result: "+err.Error())
		return
	}
	if err := s.repo.MarkCompleted(ctx, id, raw); err != nil {
		log.Printf("jobs: mark completed %s: %v", id, err)
	}
}
