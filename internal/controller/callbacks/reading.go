package callbacks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/handlers"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/service"
	"go.uber.org/zap"
)

// handleMonthChosen показывает книги выбранного месяца
func (h *Handler) handleMonthChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAccount(ctx, b, callback); !ok {
		return
	}

	month := strings.TrimPrefix(callback.Data, MonthChosen)
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	h.setData(ctx, callback.From.ID, state.KeySelectedMonth, month)

	books, err := h.bookService.ListForMonth(ctx, month)
	if err != nil {
		h.logger.Error("Failed to list books for month",
			zap.String("month", month),
			zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "❌ Kitoblar ro'yxatini olishda xatolik yuz berdi")
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	// Кнопка своей книги есть всегда: каталог месяца может быть пуст
	var rows [][]models.InlineKeyboardButton
	for _, book := range books {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: book.Title, CallbackData: BookChosen + strconv.FormatInt(book.ID, 10)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "📖 Boshqa kitob", CallbackData: OtherBook},
	})

	text := fmt.Sprintf("📚 %s oyi uchun kitoblar:", month)
	if len(books) == 0 {
		text = "Bu oy uchun kitoblar topilmadi. O'zingiz o'qigan kitobni kiritishingiz mumkin:"
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		h.logger.Error("Failed to send book list", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
	h.setState(ctx, callback.From.ID, state.StateChoosingBook)
}

// handleBookChosen отправляет файл книги и запрашивает голосовое
func (h *Handler) handleBookChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAccount(ctx, b, callback); !ok {
		return
	}

	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	bookID, err := strconv.ParseInt(strings.TrimPrefix(callback.Data, BookChosen), 10, 64)
	if err != nil {
		h.logger.Error("Bad book id in callback data", zap.String("data", callback.Data), zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, "❌ Noto'g'ri format")
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	book, data, err := h.bookService.GetContent(ctx, bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.sendText(ctx, b, msg.Chat.ID, "Kitob fayli topilmadi yoki o'chirilgan.")
		case errors.Is(err, service.ErrFileTooLarge):
			h.sendText(ctx, b, msg.Chat.ID, "❌ Kitob fayli juda katta (50 MB dan ortiq), uni yuborib bo'lmaydi.")
		default:
			h.logger.Error("Failed to fetch book content",
				zap.Int64("book_id", bookID),
				zap.Error(err))
			h.sendText(ctx, b, msg.Chat.ID, "❌ Kitob faylini olishda xatolik yuz berdi.")
		}
		return
	}

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   msg.Chat.ID,
		Document: &models.InputFileUpload{Filename: book.Filename, Data: bytes.NewReader(data)},
		Caption:  fmt.Sprintf("📖 %s\n📅 Oy: %s", book.Title, book.Month),
	})
	if err != nil {
		h.logger.Error("Failed to send book document",
			zap.Int64("book_id", bookID),
			zap.Error(err))
		h.sendText(ctx, b, msg.Chat.ID, "❌ Kitob faylini yuborishda xatolik yuz berdi.")
		return
	}

	h.setData(ctx, callback.From.ID, state.KeySelectedBookID, strconv.FormatInt(bookID, 10))

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "🎙 Kitobni o'qib bo'lgach, o'qiganingizdan ovozli xabar yuboring.",
		ReplyMarkup: handlers.CancelKeyboard(),
	})
	if err != nil {
		h.logger.Error("Failed to send voice prompt", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
	h.setState(ctx, callback.From.ID, state.StateWaitingForVoiceMessage)
}

// handleOtherBook запрашивает название книги вне каталога
func (h *Handler) handleOtherBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireAccount(ctx, b, callback); !ok {
		return
	}

	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	answerCallback(ctx, b, callback.ID, "")

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "📖 Iltimos, o'qigan kitobingiz nomini yuboring:",
		ReplyMarkup: handlers.CancelKeyboard(),
	})
	if err != nil {
		h.logger.Error("Failed to send custom book prompt", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
	h.setState(ctx, callback.From.ID, state.StateWaitingForCustomBookName)
}

func (h *Handler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		h.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
