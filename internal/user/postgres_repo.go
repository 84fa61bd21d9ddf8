package user

import (
	"context"
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

func (r *PostgresRepo) Create(ctx context.Context, user *User) error {
	const query = `
	INSERT INTO users (id, email, first_name, last_name, password_hash, partner_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		user.Email, user.FirstName, user.LastName, user.Password, user.PartnerID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
	SELECT u.id, u.email, u.first_name, u.last_name, u.password_hash, u.partner_id, p.code, u.created_at, u.updated_at
	FROM users u
	JOIN partners p ON p.id = u.partner_id
	WHERE u.email = $1
	LIMIT 1
	`
	return r.queryOne(ctx, query, email)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	const query = `
	SELECT u.id, u.email, u.first_name, u.last_name, u.password_hash, u.partner_id, p.code, u.created_at, u.updated_at
	FROM users u
	JOIN partners p ON p.id = u.partner_id
	WHERE u.id = $1
	LIMIT 1
	`
	return r.queryOne(ctx, query, id)
}

func (r *PostgresRepo) queryOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Password,
		&user.PartnerID, &user.PartnerCode, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}
