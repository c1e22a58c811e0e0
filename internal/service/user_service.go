package service

import (
	"context"
	"fmt"

	"github.com/schoolhub/schoolbot/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AccountStore операции над аккаунтами, нужные сервису
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	BindTelegramID(ctx context.Context, accountID, telegramID int64) error
	UnbindTelegramID(ctx context.Context, accountID int64) error
	UpdateField(ctx context.Context, accountID int64, field, value string) error
	UpdatePasswordHash(ctx context.Context, accountID int64, hash string) error
}

type UserService struct {
	accounts AccountStore
	logger   *zap.Logger
}

func NewUserService(accounts AccountStore, logger *zap.Logger) *UserService {
	return &UserService{
		accounts: accounts,
		logger:   logger,
	}
}

// Authenticate проверяет логин, пароль и ожидаемую роль, затем привязывает
// чат к аккаунту. Любое несовпадение возвращает ErrInvalidCredentials —
// одинаково для неверного пароля и чужой роли.
func (s *UserService) Authenticate(ctx context.Context, username, password string, expectedRole model.Role, telegramID int64) (*model.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if account.Role != expectedRole {
		return nil, ErrInvalidCredentials
	}

	if err := s.accounts.BindTelegramID(ctx, account.ID, telegramID); err != nil {
		return nil, fmt.Errorf("bind telegram id: %w", err)
	}
	account.TelegramID = &telegramID

	s.logger.Info("Account logged in",
		zap.Int64("account_id", account.ID),
		zap.String("username", account.Username),
		zap.String("role", string(account.Role)),
	)

	return account, nil
}

// Logout снимает привязку чата
func (s *UserService) Logout(ctx context.Context, account *model.Account) error {
	if err := s.accounts.UnbindTelegramID(ctx, account.ID); err != nil {
		return fmt.Errorf("unbind telegram id: %w", err)
	}

	s.logger.Info("Account logged out",
		zap.Int64("account_id", account.ID),
		zap.String("username", account.Username),
	)

	return nil
}

// GetByTelegramID получает аккаунт, привязанный к чату
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Account, error) {
	return s.accounts.GetByTelegramID(ctx, telegramID)
}

// UpdateProfileField обновляет редактируемое поле профиля.
// Пароль хэшируется bcrypt, остальные поля пишутся как есть.
func (s *UserService) UpdateProfileField(ctx context.Context, account *model.Account, field, value string) error {
	if field == "password" {
		hash, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := s.accounts.UpdatePasswordHash(ctx, account.ID, string(hash)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
	} else {
		if err := s.accounts.UpdateField(ctx, account.ID, field, value); err != nil {
			return fmt.Errorf("update field: %w", err)
		}
	}

	s.logger.Info("Profile field updated",
		zap.Int64("account_id", account.ID),
		zap.String("field", field),
	)

	return nil
}
