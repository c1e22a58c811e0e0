package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository"
	"github.com/schoolhub/schoolbot/internal/storage"
	"go.uber.org/zap"
)

// Лимиты видео-кружка
const (
	MaxVideoNoteDuration = 60                // секунд
	MaxVideoNoteSize     = 20 * 1024 * 1024  // 20MB
	MaxRegularVideoSize  = 50 * 1024 * 1024  // подсказка для обычного видео
)

// TaskSubmissionStore операции над сдачами заданий
type TaskSubmissionStore interface {
	Create(ctx context.Context, sub *model.TaskSubmission) error
}

type TaskService struct {
	submissions TaskSubmissionStore
	store       storage.ObjectStore
	logger      *zap.Logger
}

func NewTaskService(submissions TaskSubmissionStore, store storage.ObjectStore, logger *zap.Logger) *TaskService {
	return &TaskService{
		submissions: submissions,
		store:       store,
		logger:      logger,
	}
}

// ValidateVideoNote проверяет ограничения до скачивания файла.
// При нарушении запись не создаётся и байты не скачиваются.
func (s *TaskService) ValidateVideoNote(duration int, fileSize int64, forwarded bool) error {
	if forwarded {
		return ErrForwardedVideo
	}
	if duration > MaxVideoNoteDuration {
		return ErrVideoTooLong
	}
	if fileSize > MaxVideoNoteSize {
		return ErrVideoTooLarge
	}
	return nil
}

// SubmitVideo сохраняет видео-кружок по заданию. Уникальность
// (account, task) гарантирует БД: при дубликате загруженный файл
// удаляется и возвращается ErrAlreadySubmitted.
func (s *TaskService) SubmitVideo(ctx context.Context, account *model.Account, taskName string, videoBytes []byte) (*model.TaskSubmission, error) {
	objectKey := fmt.Sprintf("videos/%d_%s.mp4", account.ID, uuid.New().String())

	if err := s.store.Put(ctx, objectKey, videoBytes, "video/mp4"); err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}

	sub := &model.TaskSubmission{
		AccountID: account.ID,
		TaskName:  taskName,
		ObjectKey: objectKey,
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		// Запись не создана — подчищаем уже загруженный файл
		if delErr := s.store.Delete(ctx, objectKey); delErr != nil {
			s.logger.Warn("Failed to delete orphan video",
				zap.String("object_key", objectKey),
				zap.Error(delErr))
		}

		if errors.Is(err, repository.ErrDuplicateSubmission) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.logger.Info("Task video submitted",
		zap.Int64("account_id", account.ID),
		zap.String("task", taskName),
		zap.Int("size", len(videoBytes)),
	)

	return sub, nil
}
