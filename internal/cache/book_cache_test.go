package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*BookCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewBookCache(client), mr
}

func TestBookCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	books := []*model.Book{
		{ID: 1, Title: "Alpomish", Month: "March", ObjectKey: "books/a.pdf", Filename: "a.pdf"},
		{ID: 2, Title: "Zangori kema", Month: "March", ObjectKey: "books/z.pdf", Filename: "z.pdf"},
	}
	require.NoError(t, c.Set(ctx, "March", books))

	got, err := c.Get(ctx, "March")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpomish", got[0].Title)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestBookCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	got, err := c.Get(ctx, "March")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookCacheKeyIgnoresCase(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	books := []*model.Book{{ID: 1, Title: "Alpomish", Month: "March"}}
	require.NoError(t, c.Set(ctx, "March", books))

	got, err := c.Get(ctx, "march")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = c.Get(ctx, "MARCH")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestBookCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	books := []*model.Book{{ID: 1, Title: "Alpomish", Month: "March"}}
	require.NoError(t, c.Set(ctx, "March", books))

	mr.FastForward(BookCacheTTL + time.Minute)

	got, err := c.Get(ctx, "March")
	require.NoError(t, err)
	assert.Nil(t, got)
}
