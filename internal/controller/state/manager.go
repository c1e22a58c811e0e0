package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Диалог, брошенный на полуслове, доживает в Redis сутки
const stateTTL = 24 * time.Hour

// Manager хранит состояния чатов в Redis. Бот перезапускается без потери
// начатых диалогов, в отличие от состояния в памяти процесса.
type Manager struct {
	client *redis.Client
}

// NewManager создаёт новый менеджер состояний
func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

func stateKey(telegramID int64) string {
	return fmt.Sprintf("fsm:%d", telegramID)
}

func (sm *Manager) load(ctx context.Context, telegramID int64) (*UserData, error) {
	raw, err := sm.client.Get(ctx, stateKey(telegramID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("load user state: %w", err)
	}

	var data UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode user state: %w", err)
	}
	if data.Data == nil {
		data.Data = make(map[string]string)
	}

	return &data, nil
}

func (sm *Manager) save(ctx context.Context, telegramID int64, data *UserData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode user state: %w", err)
	}

	if err := sm.client.Set(ctx, stateKey(telegramID), raw, stateTTL).Err(); err != nil {
		return fmt.Errorf("save user state: %w", err)
	}

	return nil
}

// GetState получает текущее состояние чата
func (sm *Manager) GetState(ctx context.Context, telegramID int64) (UserState, error) {
	data, err := sm.load(ctx, telegramID)
	if err != nil {
		return StateNone, err
	}
	if data == nil {
		return StateNone, nil
	}
	return data.State, nil
}

// SetState устанавливает состояние чата, сохраняя временные данные
func (sm *Manager) SetState(ctx context.Context, telegramID int64, st UserState) error {
	data, err := sm.load(ctx, telegramID)
	if err != nil {
		return err
	}
	if data == nil {
		data = &UserData{Data: make(map[string]string)}
	}

	data.State = st
	return sm.save(ctx, telegramID, data)
}

// GetData получает значение временных данных диалога
func (sm *Manager) GetData(ctx context.Context, telegramID int64, key string) (string, bool, error) {
	data, err := sm.load(ctx, telegramID)
	if err != nil {
		return "", false, err
	}
	if data == nil {
		return "", false, nil
	}

	value, ok := data.Data[key]
	return value, ok, nil
}

// SetData устанавливает значение временных данных диалога
func (sm *Manager) SetData(ctx context.Context, telegramID int64, key, value string) error {
	data, err := sm.load(ctx, telegramID)
	if err != nil {
		return err
	}
	if data == nil {
		data = &UserData{Data: make(map[string]string)}
	}

	data.Data[key] = value
	return sm.save(ctx, telegramID, data)
}

// ClearState очищает состояние и данные чата.
// Вызывается при logout и по завершению диалога.
func (sm *Manager) ClearState(ctx context.Context, telegramID int64) error {
	if err := sm.client.Del(ctx, stateKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("clear user state: %w", err)
	}
	return nil
}

// ClearData сбрасывает временные данные, не трогая состояние
func (sm *Manager) ClearData(ctx context.Context, telegramID int64) error {
	data, err := sm.load(ctx, telegramID)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	data.Data = make(map[string]string)
	return sm.save(ctx, telegramID, data)
}
