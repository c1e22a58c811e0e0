package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"go.uber.org/zap"
)

// handleBookMonthChosen обрабатывает выбор месяца при загрузке книги
func (h *Handler) handleBookMonthChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	account, ok := h.requireAccount(ctx, b, callback)
	if !ok {
		return
	}
	if account.Role != model.RoleCoordinator {
		answerCallbackAlert(ctx, b, callback.ID, "Sizda bu funksiya mavjud emas.")
		return
	}

	month := strings.TrimPrefix(callback.Data, BookMonthChosen)
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	h.setData(ctx, callback.From.ID, state.KeyBookMonth, month)
	answerCallback(ctx, b, callback.ID, "")

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "📎 Now send the book file (PDF or Word document):",
	})
	if err != nil {
		h.logger.Error("Failed to send file prompt", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
	h.setState(ctx, callback.From.ID, state.StateUploadingBookFile)
}
