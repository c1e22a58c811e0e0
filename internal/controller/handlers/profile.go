package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/controller/state"
	"github.com/schoolhub/schoolbot/internal/model"
	"go.uber.org/zap"
)

type menuAction func(h *Handlers, ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account)

// menuActions таблица диспетчеризации главного меню: роль → допустимые
// действия. Роль проверяется один раз на запрос, а не в каждом обработчике.
var menuActions = map[model.Role]map[string]menuAction{
	model.RoleStudent: {
		BtnProfile: (*Handlers).showProfile,
		BtnEdit:    (*Handlers).startProfileEdit,
		BtnLogout:  (*Handlers).logout,
		BtnTasks:   (*Handlers).showTasks,
		BtnReading: (*Handlers).showReadingMonths,
	},
	model.RoleCoordinator: {
		BtnProfile:   (*Handlers).showProfile,
		BtnEdit:      (*Handlers).startProfileEdit,
		BtnLogout:    (*Handlers).logout,
		BtnAddBook:   (*Handlers).startBookUpload,
		BtnListBooks: (*Handlers).listBooks,
	},
	model.RoleParent: {
		BtnProfile: (*Handlers).showProfile,
		BtnLogout:  (*Handlers).logout,
	},
}

// handleProfileMenu выбирает действие главного меню по тексту кнопки
func (h *Handlers) handleProfileMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	account, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}

	action, ok := menuActions[account.Role][update.Message.Text]
	if !ok {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Iltimos, menyudagi tugmalardan birini tanlang.")
		return
	}

	action(h, ctx, b, update, account)
}

// showProfile показывает данные профиля, рамка зависит от роли
func (h *Handlers) showProfile(ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account) {
	chatID := update.Message.Chat.ID

	profileText := fmt.Sprintf(
		"🆔 Username: %s\n"+
			"📛 Ismi: %s\n"+
			"👪 Familiyasi: %s\n"+
			"🏫 Filiali: %s\n"+
			"📚 Sinfi: %s",
		account.Username,
		orDash(account.FirstName),
		orDash(account.LastName),
		orDash(account.Branch),
		orDash(account.StudentClass),
	)

	switch account.Role {
	case model.RoleParent:
		h.sendWithKeyboard(ctx, b, chatID,
			"👨‍👩‍👦 Sizning farzandingizning ma'lumotlari:\n"+profileText,
			ParentKeyboard())
	case model.RoleCoordinator:
		h.sendWithKeyboard(ctx, b, chatID,
			"🧑‍💼 Koordinator profili:\n"+profileText,
			ProfileKeyboard())
	default:
		h.sendWithKeyboard(ctx, b, chatID,
			"👤 Profil ma'lumotlari:\n"+profileText,
			ProfileKeyboard())
	}
}

// startProfileEdit начинает диалог редактирования профиля
func (h *Handlers) startProfileEdit(ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account) {
	if !account.Role.CanEditProfile() {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Faqat student va coordinatorlar o'z profilini tahrir qilishi mumkin.")
		return
	}

	h.sendWithKeyboard(ctx, b, update.Message.Chat.ID,
		"Qaysi ma'lumotni tahrirlamoqchisiz?",
		EditKeyboard())
	h.setState(ctx, b, update.Message.Chat.ID, update.Message.From.ID, state.StateEditingField)
}

// handleEditingField обрабатывает выбор редактируемого поля
func (h *Handlers) handleEditingField(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.Text == BtnCancel {
		account, ok := h.requireAccount(ctx, b, update)
		if !ok {
			return
		}
		h.sendWithKeyboard(ctx, b, chatID, "Tahrirlash bekor qilindi.", MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	fieldMap := map[string]string{
		BtnFieldUsername:  "username",
		BtnFieldFirstName: "first_name",
		BtnFieldLastName:  "last_name",
		BtnFieldPassword:  "password",
	}

	field, ok := fieldMap[update.Message.Text]
	if !ok {
		h.sendMessage(ctx, b, chatID, "Noto'g'ri tanlov. Iltimos, menyudan birini tanlang.")
		return
	}

	h.setData(ctx, telegramID, state.KeyEditField, field)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("Yangi qiymatni kiriting (%s):", update.Message.Text))
	h.setState(ctx, b, chatID, telegramID, state.StateEditingValue)
}

// handleEditingValue сохраняет новое значение поля
func (h *Handlers) handleEditingValue(ctx context.Context, b *bot.Bot, update *models.Update) {
	account, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	field, ok := h.getData(ctx, telegramID, state.KeyEditField)
	if !ok {
		h.sendWithKeyboard(ctx, b, chatID, "Bekor qilindi.", MainKeyboard(account.Role))
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	if err := h.userService.UpdateProfileField(ctx, account, field, update.Message.Text); err != nil {
		h.logger.Error("Failed to update profile field",
			zap.Int64("account_id", account.ID),
			zap.String("field", field),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring.")
		h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
		return
	}

	h.sendWithKeyboard(ctx, b, chatID, "✅ Ma'lumot yangilandi", MainKeyboard(account.Role))
	h.setState(ctx, b, chatID, telegramID, state.StateProfileMenu)
}

// logout снимает привязку чата и сбрасывает состояние
func (h *Handlers) logout(ctx context.Context, b *bot.Bot, update *models.Update, account *model.Account) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if err := h.userService.Logout(ctx, account); err != nil {
		h.logger.Error("Logout failed", zap.Int64("account_id", account.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring.")
		return
	}

	if err := h.stateManager.ClearState(ctx, telegramID); err != nil {
		h.logger.Error("Failed to clear state on logout", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}

	h.sendWithKeyboard(ctx, b, chatID, "Siz tizimdan chiqdingiz.", StartKeyboard())
}

func orDash(s string) string {
	if s == "" {
		return "---"
	}
	return s
}
