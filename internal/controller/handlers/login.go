package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/service"
	"go.uber.org/zap"
)

// handleRoleChosen обрабатывает выбор роли перед входом
func (h *Handlers) handleRoleChosen(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	role, ok := model.ParseRole(strings.ToLower(strings.TrimSpace(update.Message.Text)))
	if !ok {
		// Неизвестная роль — переспрашиваем, состояние не меняем
		h.sendMessage(ctx, b, chatID, "Iltimos berilgan rolellardan birini tanlang:")
		return
	}

	h.setData(ctx, telegramID, state.KeySelectedRole, string(role))
	h.sendMessage(ctx, b, chatID, "Login va parolingizni quyidagicha yuboring:\nlogin123 password123")
	h.setState(ctx, b, chatID, telegramID, state.StateWaitingForLogin)
}

// handleLogin обрабатывает пару "логин пароль" и привязывает чат
func (h *Handlers) handleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) != 2 {
		// Некорректный формат — retryable, остаёмся в том же состоянии
		h.sendMessage(ctx, b, chatID, "Iltimos, login va parolni quyidagicha kiriting:\nlogin123 password123")
		return
	}
	username, password := parts[0], parts[1]

	selectedRole, ok := h.getData(ctx, telegramID, state.KeySelectedRole)
	if !ok {
		h.sendMessage(ctx, b, chatID, "Iltimos, avval rolingizni tanlang. /start buyrug'i bilan qayta boshlang.")
		return
	}

	account, err := h.userService.Authenticate(ctx, username, password, model.Role(selectedRole), telegramID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.sendMessage(ctx, b, chatID, "Login yoki parol noto'g'ri yoki rolingiz mos emas. Iltimos, qayta urinib ko'ring.")
			return
		}

		h.logger.Error("Authentication failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.")
		return
	}

	h.sendWithKeyboard(ctx, b, chatID,
		fmt.Sprintf("Xush kelibsiz, %s!", account.Username),
		MainKeyboard(account.Role))
	h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
}
