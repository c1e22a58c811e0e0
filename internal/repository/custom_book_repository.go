package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository/base"
)

type CustomBookRepository struct {
	pool *pgxpool.Pool
}

func NewCustomBookRepository(pool *pgxpool.Pool) *CustomBookRepository {
	return &CustomBookRepository{pool: pool}
}

// GetOrCreate возвращает существующую книгу студента или создаёт новую.
// ON CONFLICT по (created_by, month, title): повторный ввод того же названия
// в том же месяце не плодит дубликаты.
func (r *CustomBookRepository) GetOrCreate(ctx context.Context, createdBy int64, month, title string) (*model.CustomBook, error) {
	query := `
		INSERT INTO custom_books (title, month, created_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (created_by, month, title) DO UPDATE SET title = EXCLUDED.title
		RETURNING id, title, month, created_by, created_at
	`

	var cb model.CustomBook
	err := r.pool.QueryRow(ctx, query, title, month, createdBy).Scan(
		&cb.ID,
		&cb.Title,
		&cb.Month,
		&cb.CreatedBy,
		&cb.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create custom book: %w", err)
	}

	return &cb, nil
}

// GetByID получает пользовательскую книгу по ID
func (r *CustomBookRepository) GetByID(ctx context.Context, id int64) (*model.CustomBook, error) {
	query := `SELECT id, title, month, created_by, created_at FROM custom_books WHERE id = $1`

	var cb model.CustomBook
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&cb.ID,
		&cb.Title,
		&cb.Month,
		&cb.CreatedBy,
		&cb.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get custom book by id: %w", err)
	}

	return &cb, nil
}
