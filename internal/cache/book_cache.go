package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/schoolhub/schoolbot/internal/model"
)

// BookCacheTTL каталог книг меняется редко, часа свежести достаточно.
// Инвалидация только по истечению TTL, без write-through.
const BookCacheTTL = time.Hour

// BookCache кэш списка книг месяца в Redis
type BookCache struct {
	client *redis.Client
}

func NewBookCache(client *redis.Client) *BookCache {
	return &BookCache{client: client}
}

// ключ не зависит от регистра месяца: "March" и "march" — один список
func monthKey(month string) string {
	return "books:" + strings.ToLower(month)
}

// Get возвращает книги месяца из кэша; (nil, nil) при промахе
func (c *BookCache) Get(ctx context.Context, month string) ([]*model.Book, error) {
	data, err := c.client.Get(ctx, monthKey(month)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached books: %w", err)
	}

	var books []*model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode cached books: %w", err)
	}

	return books, nil
}

// Set сохраняет книги месяца с TTL
func (c *BookCache) Set(ctx context.Context, month string, books []*model.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode books: %w", err)
	}

	if err := c.client.Set(ctx, monthKey(month), data, BookCacheTTL).Err(); err != nil {
		return fmt.Errorf("set cached books: %w", err)
	}

	return nil
}
