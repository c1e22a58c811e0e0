package service

import (
	"context"
	"testing"

	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccountStore struct {
	accounts map[string]*model.Account
	bound    map[int64]int64 // accountID -> telegramID
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		accounts: make(map[string]*model.Account),
		bound:    make(map[int64]int64),
	}
}

func (f *fakeAccountStore) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	return f.accounts[username], nil
}

func (f *fakeAccountStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.Account, error) {
	for _, acc := range f.accounts {
		if id, ok := f.bound[acc.ID]; ok && id == telegramID {
			return acc, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) GetByID(_ context.Context, id int64) (*model.Account, error) {
	for _, acc := range f.accounts {
		if acc.ID == id {
			return acc, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) BindTelegramID(_ context.Context, accountID, telegramID int64) error {
	// Чат уводится от прежнего владельца, как в транзакции репозитория
	for id, tg := range f.bound {
		if tg == telegramID {
			delete(f.bound, id)
		}
	}
	f.bound[accountID] = telegramID
	return nil
}

func (f *fakeAccountStore) UnbindTelegramID(_ context.Context, accountID int64) error {
	delete(f.bound, accountID)
	return nil
}

func (f *fakeAccountStore) UpdateField(_ context.Context, accountID int64, field, value string) error {
	return nil
}

func (f *fakeAccountStore) UpdatePasswordHash(_ context.Context, accountID int64, hash string) error {
	for _, acc := range f.accounts {
		if acc.ID == accountID {
			acc.PasswordHash = hash
		}
	}
	return nil
}

func (f *fakeAccountStore) add(id int64, username, password string, role model.Role) *model.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	acc := &model.Account{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	f.accounts[username] = acc
	return acc
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	store.add(1, "student1", "secret", model.RoleStudent)
	svc := NewUserService(store, zap.NewNop())

	t.Run("valid credentials bind the chat", func(t *testing.T) {
		acc, err := svc.Authenticate(ctx, "student1", "secret", model.RoleStudent, 777)
		require.NoError(t, err)
		require.NotNil(t, acc.TelegramID)
		assert.Equal(t, int64(777), *acc.TelegramID)
		assert.Equal(t, int64(777), store.bound[1])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "student1", "nope", model.RoleStudent, 777)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost", "secret", model.RoleStudent, 777)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("role mismatch is indistinguishable from bad password", func(t *testing.T) {
		wrongRole, err1 := svc.Authenticate(ctx, "student1", "secret", model.RoleCoordinator, 777)
		badPassword, err2 := svc.Authenticate(ctx, "student1", "nope", model.RoleStudent, 777)

		assert.Nil(t, wrongRole)
		assert.Nil(t, badPassword)
		assert.ErrorIs(t, err1, ErrInvalidCredentials)
		assert.ErrorIs(t, err2, ErrInvalidCredentials)
		assert.Equal(t, err1.Error(), err2.Error())
	})
}

func TestAuthenticateRebindsChat(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	store.add(1, "first", "pw1", model.RoleStudent)
	store.add(2, "second", "pw2", model.RoleStudent)
	svc := NewUserService(store, zap.NewNop())

	_, err := svc.Authenticate(ctx, "first", "pw1", model.RoleStudent, 555)
	require.NoError(t, err)

	// Второй аккаунт логинится из того же чата: привязка переезжает
	_, err = svc.Authenticate(ctx, "second", "pw2", model.RoleStudent, 555)
	require.NoError(t, err)

	acc, err := svc.GetByTelegramID(ctx, 555)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "second", acc.Username)

	_, stillBound := store.bound[1]
	assert.False(t, stillBound)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	acc := store.add(1, "student1", "secret", model.RoleStudent)
	svc := NewUserService(store, zap.NewNop())

	_, err := svc.Authenticate(ctx, "student1", "secret", model.RoleStudent, 777)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, acc))

	found, err := svc.GetByTelegramID(ctx, 777)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUpdateProfileFieldHashesPassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeAccountStore()
	acc := store.add(1, "student1", "old", model.RoleStudent)
	svc := NewUserService(store, zap.NewNop())

	require.NoError(t, svc.UpdateProfileField(ctx, acc, "password", "brand-new"))

	assert.NotEqual(t, "brand-new", acc.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("brand-new")))
}
