package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текст в зависимости от состояния чата.
// Нераспознанный ввод переспрашивает, не меняя состояния, — диалог не
// застревает.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются отдельными handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID

	currentState, err := h.stateManager.GetState(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get state", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.")
		return
	}

	switch currentState {
	case state.StateChoosingRole:
		h.handleRoleChosen(ctx, b, update)
	case state.StateWaitingForLogin:
		h.handleLogin(ctx, b, update)
	case state.StateProfileMenu:
		h.handleProfileMenu(ctx, b, update)
	case state.StateEditingField:
		h.handleEditingField(ctx, b, update)
	case state.StateEditingValue:
		h.handleEditingValue(ctx, b, update)
	case state.StateWaitingForTaskVideo:
		h.handleTaskVideoText(ctx, b, update)
	case state.StateChoosingTask, state.StateChoosingMonth, state.StateChoosingBook:
		// Выбор идёт через inline кнопки; текст здесь — мимо
		h.handleCancelableText(ctx, b, update)
	case state.StateWaitingForCustomBookName:
		h.handleCustomBookName(ctx, b, update)
	case state.StateWaitingForVoiceMessage:
		h.handleVoiceText(ctx, b, update)
	case state.StateWaitingForPageCount:
		h.handlePageCount(ctx, b, update)
	case state.StateUploadingBookTitle:
		h.handleBookTitle(ctx, b, update)
	case state.StateUploadingBookMonth, state.StateUploadingBookFile:
		h.handleBookUploadText(ctx, b, update)
	default:
		// Нет активного диалога — молчим
	}
}

// HandleMediaMessage обрабатывает сообщения с медиа (кружки, голосовые,
// документы) в зависимости от состояния чата
func (h *Handlers) HandleMediaMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message
	telegramID := msg.From.ID

	currentState, err := h.stateManager.GetState(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get state", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return
	}

	switch currentState {
	case state.StateWaitingForTaskVideo:
		switch {
		case msg.VideoNote != nil:
			h.handleTaskVideoNote(ctx, b, update)
		case msg.Video != nil:
			h.handleRegularVideo(ctx, b, update)
		default:
			h.sendMessage(ctx, b, msg.Chat.ID, "Please send a round video message (video note).")
		}
	case state.StateWaitingForVoiceMessage:
		if msg.Voice != nil {
			h.handleVoiceMessage(ctx, b, update)
		} else {
			h.sendMessage(ctx, b, msg.Chat.ID, "Please send a voice message.")
		}
	case state.StateUploadingBookFile:
		if msg.Document != nil {
			h.handleBookFile(ctx, b, update)
		} else {
			h.sendMessage(ctx, b, msg.Chat.ID, "📤 Please upload the book file (PDF or Word):")
		}
	default:
		// Медиа вне диалога игнорируем
	}
}

// handleCancelableText на промежуточном шаге понимает только отмену
func (h *Handlers) handleCancelableText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message.Text == BtnCancel || update.Message.Text == BtnCancelEn {
		h.cancelToMenu(ctx, b, update)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "Iltimos, tugmalardan birini tanlang yoki \"Bekor qilish\" deb yozing.")
}

// cancelToMenu сбрасывает данные диалога и возвращает в главное меню
func (h *Handlers) cancelToMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	account, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	if err := h.stateManager.ClearData(ctx, telegramID); err != nil {
		h.logger.Error("Failed to clear dialog data", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}

	h.sendWithKeyboard(ctx, b, update.Message.Chat.ID, "Bekor qilindi.", MainKeyboard(account.Role))
	h.setState(ctx, b, update.Message.Chat.ID, telegramID, state.StateProfileMenu)
}
