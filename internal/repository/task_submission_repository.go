package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository/base"
)

type TaskSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewTaskSubmissionRepository(pool *pgxpool.Pool) *TaskSubmissionRepository {
	return &TaskSubmissionRepository{pool: pool}
}

// ErrDuplicateSubmission повторная сдача того же задания
var ErrDuplicateSubmission = fmt.Errorf("submission already exists")

// Create сохраняет сдачу задания. Уникальность (account_id, task_name)
// гарантирует БД; нарушение возвращается как ErrDuplicateSubmission.
func (r *TaskSubmissionRepository) Create(ctx context.Context, sub *model.TaskSubmission) error {
	query := `
		INSERT INTO task_submissions (account_id, task_name, object_key)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		sub.AccountID,
		sub.TaskName,
		sub.ObjectKey,
	).Scan(&sub.ID, &sub.SubmittedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicateSubmission
		}
		return fmt.Errorf("create task submission: %w", err)
	}

	return nil
}

// ExistsForDate проверяет, сдавал ли студент хоть одно задание за сутки day
func (r *TaskSubmissionRepository) ExistsForDate(ctx context.Context, accountID int64, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM task_submissions
			WHERE account_id = $1 AND submitted_at >= $2 AND submitted_at < $3
		)
	`

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var exists bool
	err := r.pool.QueryRow(ctx, query, accountID, dayStart, dayEnd).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check submission for date: %w", err)
	}

	return exists, nil
}
