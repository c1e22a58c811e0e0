package service

import (
	"context"
	"testing"

	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBookStore struct {
	books       []*model.Book
	monthCalls  int
	createCalls int
}

func (f *fakeBookStore) Create(_ context.Context, book *model.Book) error {
	f.createCalls++
	book.ID = int64(len(f.books) + 1)
	f.books = append(f.books, book)
	return nil
}

func (f *fakeBookStore) GetByID(_ context.Context, id int64) (*model.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookStore) GetByMonth(_ context.Context, month string) ([]*model.Book, error) {
	f.monthCalls++
	var out []*model.Book
	for _, b := range f.books {
		if b.Month == month {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookStore) GetAllOrdered(_ context.Context) ([]*model.Book, error) {
	return f.books, nil
}

type fakeBookCache struct {
	entries map[string][]*model.Book
}

func newFakeBookCache() *fakeBookCache {
	return &fakeBookCache{entries: make(map[string][]*model.Book)}
}

func (f *fakeBookCache) Get(_ context.Context, month string) ([]*model.Book, error) {
	return f.entries[month], nil
}

func (f *fakeBookCache) Set(_ context.Context, month string, books []*model.Book) error {
	f.entries[month] = books
	return nil
}

func TestListForMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("returns books sorted by title", func(t *testing.T) {
		books := &fakeBookStore{books: []*model.Book{
			{ID: 1, Title: "Zangori kema", Month: "March"},
			{ID: 2, Title: "Alpomish", Month: "March"},
			{ID: 3, Title: "Mening bolaligim", Month: "April"},
		}}
		svc := NewBookService(books, newFakeBookCache(), newFakeObjectStore(), zap.NewNop())

		got, err := svc.ListForMonth(ctx, "March")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Alpomish", got[0].Title)
		assert.Equal(t, "Zangori kema", got[1].Title)
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		books := &fakeBookStore{books: []*model.Book{
			{ID: 1, Title: "Alpomish", Month: "March"},
		}}
		svc := NewBookService(books, newFakeBookCache(), newFakeObjectStore(), zap.NewNop())

		_, err := svc.ListForMonth(ctx, "March")
		require.NoError(t, err)
		_, err = svc.ListForMonth(ctx, "March")
		require.NoError(t, err)

		assert.Equal(t, 1, books.monthCalls)
	})
}

func TestUploadStoresFileAndRecord(t *testing.T) {
	ctx := context.Background()
	books := &fakeBookStore{}
	store := newFakeObjectStore()
	svc := NewBookService(books, newFakeBookCache(), store, zap.NewNop())
	coordinator := &model.Account{ID: 7, Role: model.RoleCoordinator}

	book, err := svc.Upload(ctx, coordinator, "Alpomish", "March", "alpomish.pdf", "application/pdf", []byte("pdf bytes"))
	require.NoError(t, err)

	assert.Equal(t, "alpomish.pdf", book.Filename)
	assert.Equal(t, int64(7), book.UploadedBy)
	assert.Contains(t, store.objects, book.ObjectKey)
	assert.Equal(t, 1, books.createCalls)
}

func TestGetContent(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown book", func(t *testing.T) {
		svc := NewBookService(&fakeBookStore{}, newFakeBookCache(), newFakeObjectStore(), zap.NewNop())

		_, _, err := svc.GetContent(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("file missing in storage", func(t *testing.T) {
		books := &fakeBookStore{books: []*model.Book{
			{ID: 1, Title: "Alpomish", Month: "March", ObjectKey: "books/gone.pdf"},
		}}
		svc := NewBookService(books, newFakeBookCache(), newFakeObjectStore(), zap.NewNop())

		_, _, err := svc.GetContent(ctx, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("file over the document limit", func(t *testing.T) {
		books := &fakeBookStore{books: []*model.Book{
			{ID: 1, Title: "Alpomish", Month: "March", ObjectKey: "books/huge.pdf"},
		}}
		store := newFakeObjectStore()
		store.objects["books/huge.pdf"] = make([]byte, MaxDocumentSize+1)
		svc := NewBookService(books, newFakeBookCache(), store, zap.NewNop())

		_, _, err := svc.GetContent(ctx, 1)
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("returns book and bytes", func(t *testing.T) {
		books := &fakeBookStore{books: []*model.Book{
			{ID: 1, Title: "Alpomish", Month: "March", ObjectKey: "books/ok.pdf", Filename: "alpomish.pdf"},
		}}
		store := newFakeObjectStore()
		store.objects["books/ok.pdf"] = []byte("pdf bytes")
		svc := NewBookService(books, newFakeBookCache(), store, zap.NewNop())

		book, data, err := svc.GetContent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Alpomish", book.Title)
		assert.Equal(t, []byte("pdf bytes"), data)
	})
}
