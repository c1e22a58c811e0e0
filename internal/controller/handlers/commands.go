package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: привязанный чат попадает сразу
// в главное меню, новый — в выбор роли
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	account, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get account on /start", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.")
		return
	}

	if account != nil {
		h.sendWithKeyboard(ctx, b, chatID,
			"Siz allaqachon ro'yxatdan o'tgansiz.",
			MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	h.sendWithKeyboard(ctx, b, chatID,
		"Iltimos, rolingizni tanlang:",
		RoleSelectionKeyboard())
	h.setState(ctx, b, chatID, telegramID, state.StateChoosingRole)
}

// HandleHelp обрабатывает команду /help, текст зависит от роли
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	account, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get account on /help", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return
	}
	if account == nil {
		return
	}

	var helpText string
	switch account.Role {
	case model.RoleCoordinator:
		helpText = "📚 Coordinator Commands\n\n" +
			"Add Book - Upload new books\n" +
			"List Books - View existing books\n" +
			"/help - Show this help"
	case model.RoleStudent:
		helpText = "📖 Student Commands\n\n" +
			"Reading - Access books\n" +
			"Tasks - Submit video tasks\n" +
			"/help - Show this help"
	default:
		helpText = "Available commands: /help"
	}

	h.sendMessage(ctx, b, chatID, helpText)
}

// HandleCancel обрабатывает команду /cancel: возврат в главное меню,
// для непривязанного чата — полный сброс
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	account, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get account on /cancel", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return
	}

	if account == nil {
		if err := h.stateManager.ClearState(ctx, telegramID); err != nil {
			h.logger.Error("Failed to clear state", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		h.sendMessage(ctx, b, chatID, "Bekor qilindi. /start buyrug'i bilan qayta boshlang.")
		return
	}

	if err := h.stateManager.ClearData(ctx, telegramID); err != nil {
		h.logger.Error("Failed to clear dialog data", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
	h.sendWithKeyboard(ctx, b, chatID, "Bekor qilindi.", MainKeyboard(account.Role))
	h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
}

// setState переводит FSM и отвечает пользователю, если хранилище недоступно
func (h *Handlers) setState(ctx context.Context, b *bot.Bot, chatID, telegramID int64, st state.UserState) {
	if err := h.stateManager.SetState(ctx, telegramID, st); err != nil {
		h.logger.Error("Failed to set state",
			zap.Int64("telegram_id", telegramID),
			zap.String("state", string(st)),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.")
	}
}

// setData сохраняет временные данные диалога с логированием сбоя
func (h *Handlers) setData(ctx context.Context, telegramID int64, key, value string) {
	if err := h.stateManager.SetData(ctx, telegramID, key, value); err != nil {
		h.logger.Error("Failed to set dialog data",
			zap.Int64("telegram_id", telegramID),
			zap.String("key", key),
			zap.Error(err))
	}
}

// getData читает временные данные диалога
func (h *Handlers) getData(ctx context.Context, telegramID int64, key string) (string, bool) {
	value, ok, err := h.stateManager.GetData(ctx, telegramID, key)
	if err != nil {
		h.logger.Error("Failed to get dialog data",
			zap.Int64("telegram_id", telegramID),
			zap.String("key", key),
			zap.Error(err))
		return "", false
	}
	return value, ok
}
