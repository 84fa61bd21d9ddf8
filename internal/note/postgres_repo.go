package note

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

func (r *PostgresRepo) Create(ctx context.Context, userID string, n *Note) error {
	const query = `
	INSERT INTO notes (id, title, kind, content, user_id, created_at, updated_at)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, now(), now())
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, n.Title, string(n.Kind), n.Content, userID).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, userID, id string) (Note, error) {
	const query = `
	SELECT n.id, n.title, n.kind, n.content, n.created_at, u.email, u.first_name, u.last_name
	FROM notes n
	JOIN users u ON u.id = n.user_id
	WHERE n.user_id = $1 AND n.id = $2
	LIMIT 1
	`
	var n Note
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, userID, id).Scan(
		&n.ID, &n.Title, &n.Kind, &n.Content, &n.CreatedAt,
		&n.Author.Email, &n.Author.FirstName, &n.Author.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return n, nil
}

func (r *PostgresRepo) List(ctx context.Context, userID string, q Query) ([]Note, int, error) {
	direction := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		direction = "ASC"
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
	SELECT n.id, n.title, n.kind, n.content, n.created_at,
		u.email, u.first_name, u.last_name, COUNT(*) OVER() AS total
	FROM notes n
	JOIN users u ON u.id = n.user_id
	WHERE n.user_id = $1 AND ($2 = '' OR n.kind = $2)
	ORDER BY n.created_at %s
	LIMIT $3 OFFSET $4
	`, direction)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, userID, string(q.Kind), pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []Note
	total := 0
	for rows.Next() {
		var n Note
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Kind, &n.Content, &n.CreatedAt,
			&n.Author.Email, &n.Author.FirstName, &n.Author.LastName, &total,
		); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, total, rows.Err()
}
