package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/service"
	"go.uber.org/zap"
)

// Tasks задания, которые студент сдаёт видео-кружком
var Tasks = []string{"Yugurish", "Mashqlar"}

// showTasks показывает список заданий
func (h *Handlers) showTasks(ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account) {
	var rows [][]models.InlineKeyboardButton
	for _, task := range Tasks {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: task, CallbackData: "task_" + task},
		})
	}

	h.sendWithKeyboard(ctx, b, update.Message.Chat.ID,
		"Quyidagi vazifalardan birini tanlang:",
		&models.InlineKeyboardMarkup{InlineKeyboard: rows})
	h.setState(ctx, b, update.Message.Chat.ID, update.Message.From.ID, state.StateChoosingTask)
}

// handleTaskVideoNote обрабатывает видео-кружок с ответом на задание
func (h *Handlers) handleTaskVideoNote(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID
	chatID := msg.Chat.ID

	account, ok := h.requireRole(ctx, b, update, model.RoleStudent)
	if !ok {
		return
	}

	taskName, ok := h.getData(ctx, telegramID, state.KeySelectedTask)
	if !ok {
		h.sendMessage(ctx, b, chatID, "Iltimos, avval vazifani tanlang!")
		return
	}

	// Ограничения проверяются до скачивания файла
	forwarded := msg.ForwardOrigin != nil
	if err := h.taskService.ValidateVideoNote(int(msg.VideoNote.Duration), int64(msg.VideoNote.FileSize), forwarded); err != nil {
		switch {
		case errors.Is(err, service.ErrForwardedVideo):
			h.sendMessage(ctx, b, chatID, "⚠️ Iltimos, forward qilingan videolarni yubormang! Shaxsiy video yuboring.")
		case errors.Is(err, service.ErrVideoTooLong):
			h.sendMessage(ctx, b, chatID, "⏱️ Video exceeds 1 minute limit")
		case errors.Is(err, service.ErrVideoTooLarge):
			h.sendMessage(ctx, b, chatID, "📦 File too large (max 20MB)")
		}
		return
	}

	processingMsg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔄 Processing your video...",
	})
	if err != nil {
		h.logger.Error("Failed to send processing message", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	videoBytes, err := h.downloader.Download(ctx, msg.VideoNote.FileID)
	if err != nil {
		h.logger.Error("Failed to download video note",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.deleteMessage(ctx, b, chatID, processingMsg)
		h.sendWithKeyboard(ctx, b, chatID,
			"❌ Upload failed\n\nPlease:\n1. Check your connection\n2. Try a shorter video\n3. Retry in 5 minutes",
			MainKeyboard(account.Role))
		return
	}

	_, err = h.taskService.SubmitVideo(ctx, account, taskName, videoBytes)
	h.deleteMessage(ctx, b, chatID, processingMsg)

	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			h.sendWithKeyboard(ctx, b, chatID,
				"Siz bu vazifani allaqachon topshirgansiz.",
				MainKeyboard(account.Role))
			h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
			return
		}

		h.logger.Error("Failed to submit task video",
			zap.Int64("account_id", account.ID),
			zap.String("task", taskName),
			zap.Error(err))
		h.sendWithKeyboard(ctx, b, chatID,
			"❌ Upload failed\n\nPlease:\n1. Check your connection\n2. Try a shorter video\n3. Retry in 5 minutes",
			MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	successMsg := fmt.Sprintf(
		"✅ Video uploaded successfully!\n\n"+
			"📝 Task: %s\n"+
			"⏱ Duration: %ds\n"+
			"📅 %s",
		taskName,
		msg.VideoNote.Duration,
		time.Now().Format("2006-01-02 15:04"),
	)

	h.sendWithKeyboard(ctx, b, chatID, successMsg, MainKeyboard(account.Role))
	h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
}

// handleRegularVideo обычное видео вместо кружка — подсказываем формат
func (h *Handlers) handleRegularVideo(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message

	if int64(msg.Video.FileSize) > service.MaxRegularVideoSize {
		h.sendMessage(ctx, b, msg.Chat.ID, "❌ Video is too large. Please keep it under 50MB")
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, "Please send a round video message (video note), not a regular video.")
}

// handleTaskVideoText текст в ожидании кружка: отмена или подсказка
func (h *Handlers) handleTaskVideoText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message.Text == BtnCancel || update.Message.Text == BtnCancelEn {
		h.cancelToMenu(ctx, b, update)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "Please send a round video message (video note).")
}

// deleteMessage удаляет служебное сообщение, сбой только логируем
func (h *Handlers) deleteMessage(ctx context.Context, b *bot.Bot, chatID int64, msg *models.Message) {
	if msg == nil {
		return
	}
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: msg.ID,
	}); err != nil {
		h.logger.Debug("Failed to delete processing message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
