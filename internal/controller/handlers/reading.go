package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/service"
	"go.uber.org/zap"
)

// showReadingMonths начинает диалог kitobxonlik с выбора месяца
func (h *Handlers) showReadingMonths(ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account) {
	h.sendWithKeyboard(ctx, b, update.Message.Chat.ID,
		"📚 Iltimos, kitob o'qish oyini tanlang:",
		MonthsKeyboard("month_", 1))
	h.setState(ctx, b, update.Message.Chat.ID, update.Message.From.ID, state.StateChoosingMonth)
}

// handleCustomBookName обрабатывает название книги вне каталога
func (h *Handlers) handleCustomBookName(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.Text == BtnCancel {
		h.cancelToMenu(ctx, b, update)
		return
	}

	h.setData(ctx, telegramID, state.KeyCustomBookTitle, update.Message.Text)
	h.sendWithKeyboard(ctx, b, chatID,
		"🎙 Iltimos, o'qigan kitobingizdan ovozli xabar yuboring.",
		CancelKeyboard())
	h.setState(ctx, b, chatID, telegramID, state.StateWaitingForVoiceMessage)
}

// handleVoiceMessage принимает голосовое подтверждение и создаёт отчёт.
// Отчёт без количества страниц — валидное промежуточное состояние:
// число приходит следующим шагом.
func (h *Handlers) handleVoiceMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID
	chatID := msg.Chat.ID

	account, ok := h.requireRole(ctx, b, update, model.RoleStudent)
	if !ok {
		return
	}

	month, ok := h.getData(ctx, telegramID, state.KeySelectedMonth)
	if !ok {
		h.sendWithKeyboard(ctx, b, chatID,
			"Oy tanlanmagan. Iltimos, qaytadan boshlang.",
			MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	var bookID *int64
	if raw, ok := h.getData(ctx, telegramID, state.KeySelectedBookID); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Error("Bad selected book id", zap.String("raw", raw), zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Xatolik yuz berdi. Iltimos, qaytadan boshlang.")
			h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
			return
		}
		bookID = &id
	}
	customBookTitle, _ := h.getData(ctx, telegramID, state.KeyCustomBookTitle)

	if bookID == nil && customBookTitle == "" {
		h.sendWithKeyboard(ctx, b, chatID,
			"Kitob tanlanmagan. Iltimos, qaytadan boshlang.",
			MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	voiceBytes, err := h.downloader.Download(ctx, msg.Voice.FileID)
	if err != nil {
		h.logger.Error("Failed to download voice message",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Ovozli xabar yuklab olinmadi. Iltimos, qaytadan urinib ko'ring.")
		return
	}

	submission, err := h.readingService.SubmitVoice(ctx, account, month, bookID, customBookTitle, voiceBytes, msg.Voice.FileUniqueID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			h.sendWithKeyboard(ctx, b, chatID,
				"Siz bu kitob bo'yicha allaqachon topshirgansiz.",
				MainKeyboard(account.Role))
			h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
			return
		}

		h.logger.Error("Failed to create reading submission",
			zap.Int64("account_id", account.ID),
			zap.String("month", month),
			zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Ovozli xabarni qabul qilishda xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring.")
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	h.setData(ctx, telegramID, state.KeySubmissionID, strconv.FormatInt(submission.ID, 10))
	h.sendWithKeyboard(ctx, b, chatID,
		"Rahmat! Endi o'qigan kitobingizdagi betlar sonini raqamda yuboring (masalan: 45).",
		CancelKeyboard())
	h.setState(ctx, b, chatID, telegramID, state.StateWaitingForPageCount)
}

// handleVoiceText текст в ожидании голосового: отмена или подсказка
func (h *Handlers) handleVoiceText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message.Text == BtnCancel {
		h.cancelToMenu(ctx, b, update)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "Please send a voice message.")
}

// handlePageCount дозаполняет количество прочитанных страниц
func (h *Handlers) handlePageCount(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.Text == BtnCancel {
		h.cancelToMenu(ctx, b, update)
		return
	}

	pageCount, err := strconv.Atoi(update.Message.Text)
	if err != nil || pageCount <= 0 {
		// Не число — переспрашиваем, состояние не меняем
		h.sendMessage(ctx, b, chatID, "Iltimos, faqat raqam yuboring (masalan: 45)")
		return
	}

	account, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}

	rawID, ok := h.getData(ctx, telegramID, state.KeySubmissionID)
	if !ok {
		h.sendWithKeyboard(ctx, b, chatID,
			"Xatolik: topshirish ID topilmadi. Iltimos, qaytadan boshlang.",
			MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	submissionID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.logger.Error("Bad submission id in dialog data", zap.String("raw", rawID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Xatolik yuz berdi. Iltimos, qaytadan boshlang.")
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	if err := h.readingService.AttachPageCount(ctx, submissionID, pageCount); err != nil {
		h.logger.Error("Failed to save page count",
			zap.Int64("submission_id", submissionID),
			zap.Error(err))
		h.sendWithKeyboard(ctx, b, chatID,
			"❌ Xatolik yuz berdi. Iltimos, faqat raqam yuboring (masalan: 45).",
			CancelKeyboard())
		return
	}

	if err := h.stateManager.ClearData(ctx, telegramID); err != nil {
		h.logger.Error("Failed to clear dialog data", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}

	h.sendWithKeyboard(ctx, b, chatID,
		fmt.Sprintf("✅ Sizning %d bet kitob o'qishingiz muvaffaqiyatli qayd etildi!", pageCount),
		MainKeyboard(account.Role))
	h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
}
