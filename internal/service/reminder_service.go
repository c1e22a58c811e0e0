package service

import (
	"context"
	"fmt"
	"time"

	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// ReminderText напоминание студенту без сдач за сегодня
const ReminderText = "📌 Salom! Bugun hali hech qanday vazifa topshirmadingiz. Iltimos, unutmaslikka harakat qiling!"

// Параметры повторной доставки: фиксированный backoff, ограниченное
// число попыток. Бесконечных циклов на одном студенте не бывает.
const (
	reminderMaxRetries = 3
	reminderBackoff    = time.Minute
)

// StudentLister студенты с привязанным чатом
type StudentLister interface {
	GetBoundStudents(ctx context.Context) ([]*model.Account, error)
}

// SubmissionChecker была ли сдача задания за сутки
type SubmissionChecker interface {
	ExistsForDate(ctx context.Context, accountID int64, day time.Time) (bool, error)
}

// MessageSender доставка текста в чат
type MessageSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type ReminderService struct {
	students    StudentLister
	submissions SubmissionChecker
	sender      MessageSender
	logger      *zap.Logger

	maxRetries uint64
	backoff    time.Duration
}

func NewReminderService(students StudentLister, submissions SubmissionChecker, sender MessageSender, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		students:    students,
		submissions: submissions,
		sender:      sender,
		logger:      logger,
		maxRetries:  reminderMaxRetries,
		backoff:     reminderBackoff,
	}
}

// RunSweep проходит по всем студентам с привязанным чатом и напоминает тем,
// у кого нет сдачи за day. Сбой доставки одному студенту ретраится и не
// прерывает обход остальных. Повторный запуск за тот же день шлёт
// напоминания повторно — ключа дедупликации нет.
func (s *ReminderService) RunSweep(ctx context.Context, day time.Time) error {
	students, err := s.students.GetBoundStudents(ctx)
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}

	s.logger.Info("Reminder sweep started",
		zap.Int("students", len(students)),
		zap.String("day", day.Format("2006-01-02")),
	)

	var sent, failed int
	for _, student := range students {
		submitted, err := s.submissions.ExistsForDate(ctx, student.ID, day)
		if err != nil {
			s.logger.Error("Failed to check submissions",
				zap.Int64("account_id", student.ID),
				zap.Error(err))
			failed++
			continue
		}
		if submitted {
			continue
		}

		if err := s.remind(ctx, *student.TelegramID); err != nil {
			s.logger.Error("Failed to deliver reminder",
				zap.Int64("account_id", student.ID),
				zap.Int64("telegram_id", *student.TelegramID),
				zap.Error(err))
			failed++
			continue
		}
		sent++
	}

	s.logger.Info("Reminder sweep finished",
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)

	return nil
}

func (s *ReminderService) remind(ctx context.Context, telegramID int64) error {
	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewConstant(s.backoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.sender.SendText(ctx, telegramID, ReminderText); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
