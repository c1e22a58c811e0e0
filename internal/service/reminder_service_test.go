package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStudentLister struct {
	students []*model.Account
}

func (f *fakeStudentLister) GetBoundStudents(_ context.Context) ([]*model.Account, error) {
	return f.students, nil
}

type fakeSubmissionChecker struct {
	submitted map[int64]bool
}

func (f *fakeSubmissionChecker) ExistsForDate(_ context.Context, accountID int64, _ time.Time) (bool, error) {
	return f.submitted[accountID], nil
}

type fakeSender struct {
	sent     map[int64]int
	failures map[int64]int // telegramID -> число отказов до успеха
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		sent:     make(map[int64]int),
		failures: make(map[int64]int),
	}
}

func (f *fakeSender) SendText(_ context.Context, chatID int64, _ string) error {
	if f.failures[chatID] > 0 {
		f.failures[chatID]--
		return errors.New("telegram unavailable")
	}
	f.sent[chatID]++
	return nil
}

func boundStudent(id, telegramID int64) *model.Account {
	return &model.Account{ID: id, Role: model.RoleStudent, TelegramID: &telegramID}
}

func newReminderFixture(students []*model.Account, submitted map[int64]bool) (*ReminderService, *fakeSender) {
	sender := newFakeSender()
	svc := NewReminderService(
		&fakeStudentLister{students: students},
		&fakeSubmissionChecker{submitted: submitted},
		sender,
		zap.NewNop(),
	)
	svc.backoff = time.Millisecond
	return svc, sender
}

func TestRunSweep(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("reminds only students without a submission", func(t *testing.T) {
		students := []*model.Account{boundStudent(1, 100), boundStudent(2, 200)}
		svc, sender := newReminderFixture(students, map[int64]bool{1: true})

		require.NoError(t, svc.RunSweep(ctx, day))

		assert.Equal(t, 0, sender.sent[100])
		assert.Equal(t, 1, sender.sent[200])
	})

	t.Run("delivery failure is retried", func(t *testing.T) {
		students := []*model.Account{boundStudent(1, 100)}
		svc, sender := newReminderFixture(students, nil)
		sender.failures[100] = 2 // первые две попытки падают

		require.NoError(t, svc.RunSweep(ctx, day))

		assert.Equal(t, 1, sender.sent[100])
	})

	t.Run("retries are bounded", func(t *testing.T) {
		students := []*model.Account{boundStudent(1, 100), boundStudent(2, 200)}
		svc, sender := newReminderFixture(students, nil)
		sender.failures[100] = 10 // больше лимита попыток

		// Отказ одному студенту не прерывает обход остальных
		require.NoError(t, svc.RunSweep(ctx, day))

		assert.Equal(t, 0, sender.sent[100])
		assert.Equal(t, 1, sender.sent[200])
	})

	t.Run("second sweep for the same day sends again", func(t *testing.T) {
		students := []*model.Account{boundStudent(1, 100)}
		svc, sender := newReminderFixture(students, nil)

		// Ключа дедупликации нет: повторный запуск шлёт напоминание ещё раз
		require.NoError(t, svc.RunSweep(ctx, day))
		require.NoError(t, svc.RunSweep(ctx, day))

		assert.Equal(t, 2, sender.sent[100])
	})
}
