package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

const (
	// Задания
	TaskChosen = "task_" // task_Yugurish

	// Kitobxonlik: выбор месяца и книги
	MonthChosen = "month_" // month_Yanvar
	BookChosen  = "book_"  // book_123
	OtherBook   = "other_book"

	// Координатор: загрузка книги
	BookMonthChosen = "bookmonth_" // bookmonth_Yanvar
)

// HandleCallbackQuery распределяет callback query по обработчикам
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", callback.From.ID))

	switch {
	case data == OtherBook:
		h.handleOtherBook(ctx, b, callback)
	case strings.HasPrefix(data, TaskChosen):
		h.handleTaskChosen(ctx, b, callback)
	case strings.HasPrefix(data, MonthChosen):
		h.handleMonthChosen(ctx, b, callback)
	case strings.HasPrefix(data, BookChosen):
		h.handleBookChosen(ctx, b, callback)
	case strings.HasPrefix(data, BookMonthChosen):
		h.handleBookMonthChosen(ctx, b, callback)
	default:
		h.logger.Warn("Unknown callback data", zap.String("data", data))
		answerCallback(ctx, b, callback.ID, "")
	}
}
