package book

import (
	"context"
	"errors"
	"fmt"
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

// UpsertRetrieved caches a normalized partner book keyed by (partner, partner book id).
func (r *PostgresRepo) UpsertRetrieved(ctx context.Context, partnerCode string, b *Book) error {
	const query = `
	INSERT INTO books (partner_code, partner_book_id, title, author, genre, image_url, publisher, year, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	ON CONFLICT (partner_code, partner_book_id)
	DO UPDATE SET title = excluded.title, author = excluded.author, genre = excluded.genre,
		image_url = excluded.image_url, publisher = excluded.publisher, year = excluded.year,
		updated_at = now()
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query,
		partnerCode, b.ID, b.Title, b.Author, b.Genre, b.ImageURL, b.Publisher, b.Year)
	return err
}

func (r *PostgresRepo) ListByAuthor(ctx context.Context, partnerCode string, q Query) ([]Book, error) {
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}
	query := fmt.Sprintf(`
	SELECT partner_book_id, title, author, genre, image_url, publisher, year
	FROM books
	WHERE partner_code = $1 AND ($2 = '' OR author ILIKE '%%' || $2 || '%%')
	ORDER BY updated_at %s
	LIMIT $3 OFFSET $4
	`, direction)
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, partnerCode, q.Author, limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.ImageURL, &b.Publisher, &b.Year); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *PostgresRepo) GetByPartnerBookID(ctx context.Context, partnerCode string, id int64) (Book, error) {
	const query = `
	SELECT partner_book_id, title, author, genre, image_url, publisher, year
	FROM books
	WHERE partner_code = $1 AND partner_book_id = $2
	LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, partnerCode, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Genre, &b.ImageURL, &b.Publisher, &b.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}
