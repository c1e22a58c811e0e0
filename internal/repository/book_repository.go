package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository/base"
)

const bookColumns = `id, title, month, object_key, filename, uploaded_by, uploaded_at`

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Month,
		&b.ObjectKey,
		&b.Filename,
		&b.UploadedBy,
		&b.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create сохраняет новую книгу
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (title, month, object_key, filename, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		book.Title,
		book.Month,
		book.ObjectKey,
		book.Filename,
		book.UploadedBy,
	).Scan(&book.ID, &book.UploadedAt)

	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

// GetByID получает книгу по ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book by id: %w", err)
	}

	return book, nil
}

// GetByMonth получает книги месяца, без учёта регистра, по алфавиту
func (r *BookRepository) GetByMonth(ctx context.Context, month string) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE LOWER(month) = LOWER($1) ORDER BY title`

	rows, err := r.pool.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("get books by month: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

// GetAllOrdered получает все книги, сгруппированные по месяцу (для списка координатора)
func (r *BookRepository) GetAllOrdered(ctx context.Context) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY month, title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}
