package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"go.uber.org/zap"
)

// Helper functions для всех callback handlers

// answerCallback отвечает на callback query (без alert)
func answerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// answerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func answerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// messageFromCallback извлекает сообщение из callback query
func messageFromCallback(callback *models.CallbackQuery) *models.Message {
	return callback.Message.Message
}

// requireAccount проверяет, что отправитель callback привязан к аккаунту
func (h *Handler) requireAccount(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.Account, bool) {
	account, err := h.userService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil {
		h.logger.Error("Failed to look up account for callback",
			zap.Int64("telegram_id", callback.From.ID),
			zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "❌ Xatolik yuz berdi")
		return nil, false
	}
	if account == nil {
		answerCallbackAlert(ctx, b, callback.ID, "Foydalanuvchi topilmadi. /start buyrug'i bilan tizimga kiring.")
		return nil, false
	}
	return account, true
}

func (h *Handler) setState(ctx context.Context, telegramID int64, st state.UserState) {
	if err := h.stateManager.SetState(ctx, telegramID, st); err != nil {
		h.logger.Error("Failed to set user state",
			zap.Int64("telegram_id", telegramID),
			zap.String("state", string(st)),
			zap.Error(err))
	}
}

func (h *Handler) setData(ctx context.Context, telegramID int64, key, value string) {
	if err := h.stateManager.SetData(ctx, telegramID, key, value); err != nil {
		h.logger.Error("Failed to set dialog data",
			zap.Int64("telegram_id", telegramID),
			zap.String("key", key),
			zap.Error(err))
	}
}
