package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository"
	"github.com/schoolhub/schoolbot/internal/storage"
	"go.uber.org/zap"
)

// ReadingSubmissionStore операции над отчётами о чтении
type ReadingSubmissionStore interface {
	Create(ctx context.Context, sub *model.ReadingSubmission) error
	GetByID(ctx context.Context, id int64) (*model.ReadingSubmission, error)
	UpdateVoiceObjectKey(ctx context.Context, id int64, objectKey string) error
	UpdatePageCount(ctx context.Context, id int64, pageCount int) error
}

// CustomBookStore get-or-create для книг вне каталога
type CustomBookStore interface {
	GetOrCreate(ctx context.Context, createdBy int64, month, title string) (*model.CustomBook, error)
}

type ReadingService struct {
	submissions ReadingSubmissionStore
	customBooks CustomBookStore
	store       storage.ObjectStore
	logger      *zap.Logger
}

func NewReadingService(submissions ReadingSubmissionStore, customBooks CustomBookStore, store storage.ObjectStore, logger *zap.Logger) *ReadingService {
	return &ReadingService{
		submissions: submissions,
		customBooks: customBooks,
		store:       store,
		logger:      logger,
	}
}

// SubmitVoice создаёт отчёт о чтении и прикрепляет голосовое подтверждение.
// Ровно одно из bookID/customBookTitle должно быть задано — взаимная
// исключительность проверяется здесь и страхуется CHECK-ом в схеме.
// Количество страниц приходит следующим шагом диалога: запись без него —
// валидное промежуточное состояние, дозаполняемое через AttachPageCount.
func (s *ReadingService) SubmitVoice(ctx context.Context, account *model.Account, month string, bookID *int64, customBookTitle string, voiceBytes []byte, voiceUniqueID string) (*model.ReadingSubmission, error) {
	if (bookID == nil) == (customBookTitle == "") {
		return nil, ErrBookNotChosen
	}

	sub := &model.ReadingSubmission{
		AccountID: account.ID,
		Month:     month,
		BookID:    bookID,
	}

	if customBookTitle != "" {
		customBook, err := s.customBooks.GetOrCreate(ctx, account.ID, month, customBookTitle)
		if err != nil {
			return nil, fmt.Errorf("get or create custom book: %w", err)
		}
		sub.CustomBookID = &customBook.ID
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("create reading submission: %w", err)
	}

	objectKey := fmt.Sprintf("voice/%d_%s.ogg", sub.ID, voiceUniqueID)
	if err := s.store.Put(ctx, objectKey, voiceBytes, "audio/ogg"); err != nil {
		return nil, fmt.Errorf("store voice file: %w", err)
	}

	if err := s.submissions.UpdateVoiceObjectKey(ctx, sub.ID, objectKey); err != nil {
		return nil, fmt.Errorf("attach voice file: %w", err)
	}
	sub.VoiceObjectKey = objectKey

	s.logger.Info("Reading submission created",
		zap.Int64("submission_id", sub.ID),
		zap.Int64("account_id", account.ID),
		zap.String("month", month),
	)

	return sub, nil
}

// AttachPageCount дозаполняет количество прочитанных страниц
func (s *ReadingService) AttachPageCount(ctx context.Context, submissionID int64, pageCount int) error {
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("get reading submission: %w", err)
	}
	if sub == nil {
		return ErrNotFound
	}

	if err := s.submissions.UpdatePageCount(ctx, submissionID, pageCount); err != nil {
		return fmt.Errorf("update page count: %w", err)
	}

	s.logger.Info("Page count recorded",
		zap.Int64("submission_id", submissionID),
		zap.Int("page_count", pageCount),
	)

	return nil
}
