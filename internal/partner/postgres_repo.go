package partner

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notesapi/internal/note"
)

// ErrNotFound is returned when a partner record is not found.
var ErrNotFound = errors.New("partner not found")

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

func (r *PostgresRepo) GetByCode(ctx context.Context, code string) (Partner, error) {
	const query = `
	SELECT id, code, name, short_content_length, medium_content_length
	FROM partners
	WHERE code = $1
	LIMIT 1
	`
	return r.queryOne(ctx, query, code)
}

// GetByUserID resolves a user's owning partner (users belong to exactly one
// partner).
func (r *PostgresRepo) GetByUserID(ctx context.Context, userID string) (Partner, error) {
	const query = `
	SELECT p.id, p.code, p.name, p.short_content_length, p.medium_content_length
	FROM partners p
	JOIN users u ON u.partner_id = p.id
	WHERE u.id = $1
	LIMIT 1
	`
	return r.queryOne(ctx, query, userID)
}

// CodeForUser resolves just the owning partner's code.
func (r *PostgresRepo) CodeForUser(ctx context.Context, userID string) (string, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.Code, nil
}

// PolicyForUser satisfies note.PolicyResolver.
func (r *PostgresRepo) PolicyForUser(ctx context.Context, userID string) (note.Policy, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return note.Policy{}, err
	}
	return p.Policy(), nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Partner, error) {
	const query = `
	SELECT id, code, name, short_content_length, medium_content_length
	FROM partners
	ORDER BY code
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.ShortContentLength, &p.MediumContentLength); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, p *Partner) error {
	const query = `
	INSERT INTO partners (id, code, name, short_content_length, medium_content_length, created_at, updated_at)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, now(), now())
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		p.Code, p.Name, p.ShortContentLength, p.MediumContentLength).Scan(&p.ID)
}

func (r *PostgresRepo) queryOne(ctx context.Context, query string, arg any) (Partner, error) {
	var p Partner
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(
		&p.ID, &p.Code, &p.Name, &p.ShortContentLength, &p.MediumContentLength)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Partner{}, ErrNotFound
		}
		return Partner{}, err
	}
	return p, nil
}
