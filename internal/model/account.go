package model

import "time"

// Role роль аккаунта в системе
type Role string

const (
	RoleStudent     Role = "student"
	RoleParent      Role = "parent"
	RoleCoordinator Role = "coordinator"
)

// ParseRole преобразует пользовательский ввод в роль
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleParent, RoleCoordinator:
		return Role(s), true
	}
	return "", false
}

// CanEditProfile редактировать профиль могут только студенты и координаторы
func (r Role) CanEditProfile() bool {
	return r == RoleStudent || r == RoleCoordinator
}

type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TelegramID   *int64    `json:"telegram_id"` // NULL пока аккаунт не привязан к чату
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Branch       string    `json:"branch"`
	StudentClass string    `json:"student_class"`
	CreatedAt    time.Time `json:"created_at"`
}
