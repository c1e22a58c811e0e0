package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// Sender отправляет текстовые сообщения в чаты через Bot API
type Sender struct {
	bot *bot.Bot
}

func NewSender(b *bot.Bot) *Sender {
	return &Sender{bot: b}
}

// SendText отправляет текстовое сообщение в чат
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
