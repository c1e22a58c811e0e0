package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/callbacks"
	"github.com/schoolhub/schoolbot/internal/controller/handlers"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/service"
	"github.com/schoolhub/schoolbot/internal/telegram"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	taskService *service.TaskService,
	bookService *service.BookService,
	readingService *service.ReadingService,
	stateManager *state.Manager,
	downloader *telegram.Downloader,
	logger *zap.Logger,
) *BotController {
	// Создаём обработчики команд и диалогов
	cmdHandlers := handlers.NewHandlers(
		userService,
		taskService,
		bookService,
		readingService,
		stateManager,
		downloader,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		userService,
		bookService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Медиа не покрывается HandlerTypeMessageText, ловим отдельным матчером
	c.bot.RegisterHandlerMatchFunc(isMediaMessage, c.handlers.HandleMediaMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

func isMediaMessage(update *models.Update) bool {
	msg := update.Message
	if msg == nil {
		return false
	}
	return msg.VideoNote != nil || msg.Video != nil || msg.Voice != nil || msg.Document != nil
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Botni ishga tushirish"},
		{Command: "help", Description: "❓ Yordam"},
		{Command: "cancel", Description: "🚫 Amalni bekor qilish"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
