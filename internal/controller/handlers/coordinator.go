package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"go.uber.org/zap"
)

// startBookUpload начинает диалог загрузки книги координатором
func (h *Handlers) startBookUpload(ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account) {
	chatID := update.Message.Chat.ID

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📖 Enter the book title:",
		ReplyMarkup: &models.ReplyKeyboardRemove{RemoveKeyboard: true},
	})
	if err != nil {
		h.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.setState(ctx, b, chatID, update.Message.From.ID, state.StateUploadingBookTitle)
}

// handleBookTitle принимает название книги и запрашивает месяц
func (h *Handlers) handleBookTitle(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	title := strings.TrimSpace(update.Message.Text)

	if title == BtnCancelEn {
		h.cancelBookUpload(ctx, b, update)
		return
	}

	if title == "" || len(title) > MaxBookTitleLength {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ The title must be between 1 and %d characters. Try again:", MaxBookTitleLength))
		return
	}

	h.setData(ctx, telegramID, state.KeyBookTitle, title)
	h.sendWithKeyboard(ctx, b, chatID,
		"📅 Choose the month for this book:",
		MonthsKeyboard("bookmonth_", 3))
	h.setState(ctx, b, chatID, telegramID, state.StateUploadingBookMonth)
}

// handleBookUploadText текст на шагах загрузки, где ждём не текст
func (h *Handlers) handleBookUploadText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message.Text == BtnCancelEn {
		h.cancelBookUpload(ctx, b, update)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📎 Please send the book file (PDF or Word document).")
}

func (h *Handlers) cancelBookUpload(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	account, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}

	if err := h.stateManager.ClearData(ctx, telegramID); err != nil {
		h.logger.Error("Failed to clear dialog data", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
	h.sendWithKeyboard(ctx, b, chatID, "🚫 Book upload cancelled.", MainKeyboard(account.Role))
	h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
}

// handleBookFile принимает файл книги, проверяет тип и сохраняет
func (h *Handlers) handleBookFile(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID
	chatID := msg.Chat.ID

	account, ok := h.requireRole(ctx, b, update, model.RoleCoordinator)
	if !ok {
		return
	}

	if !allowedBookMimeTypes[msg.Document.MimeType] {
		h.sendMessage(ctx, b, chatID, "❌ Only PDF or Word documents are allowed.")
		return
	}

	title, ok := h.getData(ctx, telegramID, state.KeyBookTitle)
	if !ok {
		h.sendWithKeyboard(ctx, b, chatID,
			"❌ Book title is missing. Please start again.",
			MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}
	month, ok := h.getData(ctx, telegramID, state.KeyBookMonth)
	if !ok {
		h.sendWithKeyboard(ctx, b, chatID,
			"❌ Book month is missing. Please start again.",
			MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	data, err := h.downloader.Download(ctx, msg.Document.FileID)
	if err != nil {
		h.logger.Error("Failed to download book file",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Failed to download the file. Please try again.")
		return
	}

	book, err := h.bookService.Upload(ctx, account, title, month, msg.Document.FileName, msg.Document.MimeType, data)
	if err != nil {
		h.logger.Error("Failed to save book",
			zap.String("title", title),
			zap.String("month", month),
			zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Failed to save the book. Please try again.")
		return
	}

	if err := h.stateManager.ClearData(ctx, telegramID); err != nil {
		h.logger.Error("Failed to clear dialog data", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
	h.sendWithKeyboard(ctx, b, chatID,
		fmt.Sprintf("✅ Book '%s' uploaded successfully!", book.Title),
		MainKeyboard(account.Role))
	h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
}

// listBooks показывает каталог книг, сгруппированный по месяцам
func (h *Handlers) listBooks(ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account) {
	chatID := update.Message.Chat.ID

	books, err := h.bookService.ListAll(ctx)
	if err != nil {
		h.logger.Error("Failed to list books", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Failed to load the book list.")
		return
	}
	if len(books) == 0 {
		h.sendMessage(ctx, b, chatID, "No books available yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 Available Books:\n")
	currentMonth := ""
	for _, book := range books {
		if book.Month != currentMonth {
			currentMonth = book.Month
			sb.WriteString(fmt.Sprintf("\n📅 %s:\n", book.Month))
		}
		sb.WriteString(fmt.Sprintf("- %s (ID: %d)\n", book.Title, book.ID))
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}
