package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, job *Job) error {
	params, err := json.Marshal(job.Params)
	if err != nil {
		return err
	}
	const query = `
	INSERT INTO jobs (id, worker, params, status, created_at, updated_at)
	VALUES (gen_random_uuid(), $1, $2, $3, now(), now())
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, job.Worker, params, job.Status).
		Scan(&job.ID, &job.CreatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Job, error) {
	const query = `
	SELECT id, worker, params, status, COALESCE(result, 'null'), COALESCE(error, ''), created_at, finished_at
	FROM jobs
	WHERE id = $1
	LIMIT 1
	`
	var job Job
	var params []byte
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&job.ID, &job.Worker, &params, &job.Status, &job.Result, &job.Error,
		&job.CreatedAt, &job.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &job.Params); err != nil {
			return Job{}, err
		}
	}
	return job, nil
}

func (r *PostgresRepo) MarkRunning(ctx context.Context, id string) error {
	const query = `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, id, StatusRunning)
	return err
}

func (r *PostgresRepo) MarkCompleted(ctx context.Context, id string, result json.RawMessage) error {
	const query = `
	UPDATE jobs SET status = $2, result = $3, finished_at = now(), updated_at = now()
	WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, id, StatusCompleted, result)
	return err
}

func (r *PostgresRepo) MarkFailed(ctx context.Context, id string, errMsg string) error {
	const query = `
	UPDATE jobs SET status = $2, error = $3, finished_at = now(), updated_at = now()
	WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, id, StatusFailed, errMsg)
	return err
}
