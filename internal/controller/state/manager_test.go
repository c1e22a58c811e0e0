package state

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewManager(client), mr
}

func TestManagerState(t *testing.T) {
	ctx := context.Background()
	sm, _ := newTestManager(t)

	st, err := sm.GetState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, StateNone, st)

	require.NoError(t, sm.SetState(ctx, 100, StateWaitingForLogin))

	st, err = sm.GetState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, StateWaitingForLogin, st)

	// Состояния чатов независимы
	st, err = sm.GetState(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, StateNone, st)
}

func TestManagerData(t *testing.T) {
	ctx := context.Background()
	sm, _ := newTestManager(t)

	_, ok, err := sm.GetData(ctx, 100, KeySelectedMonth)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sm.SetData(ctx, 100, KeySelectedMonth, "March"))
	require.NoError(t, sm.SetData(ctx, 100, KeySelectedBookID, "5"))

	month, ok, err := sm.GetData(ctx, 100, KeySelectedMonth)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "March", month)

	// Смена состояния не трогает данные диалога
	require.NoError(t, sm.SetState(ctx, 100, StateChoosingBook))
	bookID, ok, err := sm.GetData(ctx, 100, KeySelectedBookID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "5", bookID)
}

func TestManagerClearData(t *testing.T) {
	ctx := context.Background()
	sm, _ := newTestManager(t)

	require.NoError(t, sm.SetState(ctx, 100, StateChoosingBook))
	require.NoError(t, sm.SetData(ctx, 100, KeySelectedMonth, "March"))

	require.NoError(t, sm.ClearData(ctx, 100))

	// Данные стёрты, состояние осталось
	_, ok, err := sm.GetData(ctx, 100, KeySelectedMonth)
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := sm.GetState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, StateChoosingBook, st)
}

func TestManagerClearState(t *testing.T) {
	ctx := context.Background()
	sm, _ := newTestManager(t)

	require.NoError(t, sm.SetState(ctx, 100, StateProfileMenu))
	require.NoError(t, sm.SetData(ctx, 100, KeySelectedTask, "Yugurish"))

	require.NoError(t, sm.ClearState(ctx, 100))

	st, err := sm.GetState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, StateNone, st)

	_, ok, err := sm.GetData(ctx, 100, KeySelectedTask)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManagerStateExpires(t *testing.T) {
	ctx := context.Background()
	sm, mr := newTestManager(t)

	require.NoError(t, sm.SetState(ctx, 100, StateWaitingForLogin))

	// Брошенный диалог умирает по TTL
	mr.FastForward(stateTTL + time.Minute)

	st, err := sm.GetState(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, StateNone, st)
}
