package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/storage"
	"go.uber.org/zap"
)

// MaxDocumentSize потолок Telegram на отправку документа ботом
const MaxDocumentSize = 50 * 1024 * 1024

// BookStore операции над каталогом книг
type BookStore interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetByMonth(ctx context.Context, month string) ([]*model.Book, error)
	GetAllOrdered(ctx context.Context) ([]*model.Book, error)
}

// BookListCache кэш списков месяца с TTL
type BookListCache interface {
	Get(ctx context.Context, month string) ([]*model.Book, error)
	Set(ctx context.Context, month string, books []*model.Book) error
}

type BookService struct {
	books  BookStore
	cache  BookListCache
	store  storage.ObjectStore
	logger *zap.Logger
}

func NewBookService(books BookStore, cache BookListCache, store storage.ObjectStore, logger *zap.Logger) *BookService {
	return &BookService{
		books:  books,
		cache:  cache,
		store:  store,
		logger: logger,
	}
}

// Upload сохраняет файл книги и запись каталога
func (s *BookService) Upload(ctx context.Context, coordinator *model.Account, title, month, filename, contentType string, data []byte) (*model.Book, error) {
	objectKey := fmt.Sprintf("books/%s_%s", uuid.New().String(), filename)

	if err := s.store.Put(ctx, objectKey, data, contentType); err != nil {
		return nil, fmt.Errorf("store book file: %w", err)
	}

	book := &model.Book{
		Title:      title,
		Month:      month,
		ObjectKey:  objectKey,
		Filename:   filename,
		UploadedBy: coordinator.ID,
	}

	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("Book uploaded",
		zap.Int64("book_id", book.ID),
		zap.String("title", title),
		zap.String("month", month),
		zap.Int64("coordinator_id", coordinator.ID),
	)

	return book, nil
}

// ListForMonth возвращает книги месяца (без учёта регистра) по алфавиту.
// Список кэшируется на час; ошибки кэша не валят запрос — идём в БД.
func (s *BookService) ListForMonth(ctx context.Context, month string) ([]*model.Book, error) {
	cached, err := s.cache.Get(ctx, month)
	if err != nil {
		s.logger.Warn("Book cache read failed", zap.String("month", month), zap.Error(err))
	}
	if cached != nil {
		return sortByTitle(cached), nil
	}

	books, err := s.books.GetByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("list books for month: %w", err)
	}

	if err := s.cache.Set(ctx, month, books); err != nil {
		s.logger.Warn("Book cache write failed", zap.String("month", month), zap.Error(err))
	}

	return sortByTitle(books), nil
}

// ListAll возвращает весь каталог, сгруппированный по месяцу
func (s *BookService) ListAll(ctx context.Context) ([]*model.Book, error) {
	books, err := s.books.GetAllOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all books: %w", err)
	}
	return books, nil
}

// GetContent отдаёт книгу и её байты для отправки в чат.
// Файл обязан существовать в хранилище, размер проверяется до чтения:
// заведомо обречённую отправку >50MB не начинаем.
func (s *BookService) GetContent(ctx context.Context, bookID int64) (*model.Book, []byte, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, nil, ErrNotFound
	}

	size, err := s.store.Stat(ctx, book.ObjectKey)
	if err != nil {
		s.logger.Warn("Book file missing in storage",
			zap.Int64("book_id", book.ID),
			zap.String("object_key", book.ObjectKey),
			zap.Error(err))
		return nil, nil, ErrNotFound
	}

	if size > MaxDocumentSize {
		return book, nil, ErrFileTooLarge
	}

	data, err := s.store.Get(ctx, book.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read book file: %w", err)
	}

	return book, data, nil
}

func sortByTitle(books []*model.Book) []*model.Book {
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books
}
