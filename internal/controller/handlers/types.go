package handlers

import (
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/service"
	"github.com/schoolhub/schoolbot/internal/telegram"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки сообщений
type Handlers struct {
	userService    *service.UserService
	taskService    *service.TaskService
	bookService    *service.BookService
	readingService *service.ReadingService
	stateManager   *state.Manager
	downloader     *telegram.Downloader
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик сообщений
func NewHandlers(
	userService *service.UserService,
	taskService *service.TaskService,
	bookService *service.BookService,
	readingService *service.ReadingService,
	stateManager *state.Manager,
	downloader *telegram.Downloader,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:    userService,
		taskService:    taskService,
		bookService:    bookService,
		readingService: readingService,
		stateManager:   stateManager,
		downloader:     downloader,
		logger:         logger,
	}
}
