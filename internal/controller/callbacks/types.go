package callbacks

import (
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит зависимости для обработки callback query
type Handler struct {
	userService  *service.UserService
	bookService  *service.BookService
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks
func NewHandler(
	userService *service.UserService,
	bookService *service.BookService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userService:  userService,
		bookService:  bookService,
		stateManager: stateManager,
		logger:       logger,
	}
}
