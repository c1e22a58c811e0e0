package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/handlers"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"go.uber.org/zap"
)

// handleTaskChosen обрабатывает выбор задания из списка
func (h *Handler) handleTaskChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAccount(ctx, b, callback); !ok {
		return
	}

	taskName := strings.TrimPrefix(callback.Data, TaskChosen)
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	h.setData(ctx, callback.From.ID, state.KeySelectedTask, taskName)
	answerCallback(ctx, b, callback.ID, "")

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: "🎥 '" + taskName + "' vazifasi uchun dumaloq video (video note) yuboring.\n\n" +
			"⏱ Maksimal davomiylik: 60 soniya",
		ReplyMarkup: handlers.CancelKeyboard(),
	})
	if err != nil {
		h.logger.Error("Failed to send task prompt", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
	h.setState(ctx, callback.From.ID, state.StateWaitingForTaskVideo)
}
