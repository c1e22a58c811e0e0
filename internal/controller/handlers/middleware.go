package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/model"
	"go.uber.org/zap"
)

// requireAccount проверяет что чат привязан к аккаунту.
// Возвращает account и true если OK, nil и false если нет.
func (h *Handlers) requireAccount(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Account, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	account, err := h.userService.GetByTelegramID(ctx, telegramID)

	if err != nil {
		h.logger.Error("Failed to get account", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.")
		return nil, false
	}

	if account == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "Foydalanuvchi topilmadi. /start buyrug'i bilan tizimga kiring.")
		return nil, false
	}

	return account, true
}

// requireRole проверяет что аккаунт имеет нужную роль
func (h *Handlers) requireRole(ctx context.Context, b *bot.Bot, update *models.Update, role model.Role) (*model.Account, bool) {
	account, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return nil, false
	}

	if account.Role != role {
		h.sendError(ctx, b, update.Message.Chat.ID, "Sizda bu funksiya mavjud emas.")
		return nil, false
	}

	return account, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendWithKeyboard отправляет сообщение с клавиатурой
func (h *Handlers) sendWithKeyboard(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("Failed to send message with keyboard",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
