package app

import (
	"context"
	"time"

	"github.com/schoolhub/schoolbot/internal/service"
	"go.uber.org/zap"
)

// Час суток (по локальному времени сервера), когда уходят напоминания.
// К вечеру у студента ещё остаётся время сдать задание.
const reminderHour = 20

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	reminderService *service.ReminderService
	logger          *zap.Logger
	stopChan        chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(reminderService *service.ReminderService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reminderService: reminderService,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runReminderTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runReminderTask раз в сутки рассылает напоминания студентам без сдач.
// Первый запуск откладывается до ближайшего reminderHour, чтобы рестарт
// бота днём не рассылал напоминания вне расписания.
func (s *Scheduler) runReminderTask(ctx context.Context) {
	timer := time.NewTimer(untilNextReminder(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.sendReminders(ctx)
			timer.Reset(untilNextReminder(time.Now()))
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

func untilNextReminder(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), reminderHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// sendReminders запускает обход студентов за сегодняшний день
func (s *Scheduler) sendReminders(ctx context.Context) {
	s.logger.Info("Starting daily reminder sweep")

	if err := s.reminderService.RunSweep(ctx, time.Now()); err != nil {
		s.logger.Error("Reminder sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("Daily reminder sweep completed")
}
