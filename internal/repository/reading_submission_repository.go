package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository/base"
)

type ReadingSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewReadingSubmissionRepository(pool *pgxpool.Pool) *ReadingSubmissionRepository {
	return &ReadingSubmissionRepository{pool: pool}
}

// Create сохраняет отчёт о чтении. CHECK в схеме требует ровно одну из
// ссылок book/custom_book, уникальные индексы не дают сдать одну книгу дважды.
func (r *ReadingSubmissionRepository) Create(ctx context.Context, sub *model.ReadingSubmission) error {
	query := `
		INSERT INTO reading_submissions (account_id, month, book_id, custom_book_id, voice_object_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		sub.AccountID,
		sub.Month,
		sub.BookID,
		sub.CustomBookID,
		sub.VoiceObjectKey,
	).Scan(&sub.ID, &sub.SubmittedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicateSubmission
		}
		return fmt.Errorf("create reading submission: %w", err)
	}

	return nil
}

// GetByID получает отчёт по ID
func (r *ReadingSubmissionRepository) GetByID(ctx context.Context, id int64) (*model.ReadingSubmission, error) {
	query := `
		SELECT id, account_id, month, book_id, custom_book_id, voice_object_key, page_count, submitted_at
		FROM reading_submissions
		WHERE id = $1
	`

	var sub model.ReadingSubmission
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.AccountID,
		&sub.Month,
		&sub.BookID,
		&sub.CustomBookID,
		&sub.VoiceObjectKey,
		&sub.PageCount,
		&sub.SubmittedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reading submission by id: %w", err)
	}

	return &sub, nil
}

// UpdateVoiceObjectKey прикрепляет голосовое подтверждение
func (r *ReadingSubmissionRepository) UpdateVoiceObjectKey(ctx context.Context, id int64, objectKey string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reading_submissions SET voice_object_key = $1 WHERE id = $2`,
		objectKey, id,
	)
	if err != nil {
		return fmt.Errorf("update voice object key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reading submission not found")
	}

	return nil
}

// UpdatePageCount дозаполняет количество прочитанных страниц.
// Запись без page_count — валидное промежуточное состояние: студент мог
// оборваться между голосовым сообщением и числом страниц.
func (r *ReadingSubmissionRepository) UpdatePageCount(ctx context.Context, id int64, pageCount int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reading_submissions SET page_count = $1 WHERE id = $2`,
		pageCount, id,
	)
	if err != nil {
		return fmt.Errorf("update page count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reading submission not found")
	}

	return nil
}
