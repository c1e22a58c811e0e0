package handlers

import (
	"github.com/go-telegram/bot/models"
	"github.com/schoolhub/schoolbot/internal/model"
)

// RoleSelectionKeyboard клавиатура выбора роли при первом контакте
func RoleSelectionKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnRoleStudent}},
			{{Text: BtnRoleCoordinator}},
			{{Text: BtnRoleParent}},
		},
		ResizeKeyboard: true,
	}
}

// MainKeyboard главное меню, своё для каждой роли
func MainKeyboard(role model.Role) *models.ReplyKeyboardMarkup {
	switch role {
	case model.RoleStudent:
		return &models.ReplyKeyboardMarkup{
			Keyboard: [][]models.KeyboardButton{
				{{Text: BtnProfile}, {Text: BtnTasks}},
				{{Text: BtnReading}},
			},
			ResizeKeyboard: true,
		}
	case model.RoleCoordinator:
		return &models.ReplyKeyboardMarkup{
			Keyboard: [][]models.KeyboardButton{
				{{Text: BtnProfile}, {Text: BtnAddBook}},
				{{Text: BtnListBooks}, {Text: BtnLogout}},
			},
			ResizeKeyboard: true,
		}
	default:
		return &models.ReplyKeyboardMarkup{
			Keyboard: [][]models.KeyboardButton{
				{{Text: BtnProfile}},
			},
			ResizeKeyboard: true,
		}
	}
}

// ProfileKeyboard действия на экране профиля
func ProfileKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnEdit}, {Text: BtnLogout}},
		},
		ResizeKeyboard: true,
	}
}

// ParentKeyboard у родителя только выход
func ParentKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnLogout}},
		},
		ResizeKeyboard: true,
	}
}

// EditKeyboard выбор редактируемого поля
func EditKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnFieldUsername}},
			{{Text: BtnFieldFirstName}},
			{{Text: BtnFieldLastName}},
			{{Text: BtnFieldPassword}},
			{{Text: BtnCancel}},
		},
		ResizeKeyboard: true,
	}
}

// CancelKeyboard одна кнопка отмены, для промежуточных шагов диалога
func CancelKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnCancel}},
		},
		ResizeKeyboard: true,
	}
}

// StartKeyboard показывается после выхода из системы
func StartKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "/start"}},
		},
		ResizeKeyboard: true,
	}
}

// MonthsKeyboard inline клавиатура месяцев, по columns кнопок в ряду
func MonthsKeyboard(callbackPrefix string, columns int) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton

	for _, month := range Months {
		row = append(row, models.InlineKeyboardButton{
			Text:         month,
			CallbackData: callbackPrefix + month,
		})
		if len(row) == columns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
