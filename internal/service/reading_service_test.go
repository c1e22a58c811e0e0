package service

import (
	"context"
	"testing"

	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReadingSubmissionStore struct {
	subs   []*model.ReadingSubmission
	nextID int64
}

func (f *fakeReadingSubmissionStore) Create(_ context.Context, sub *model.ReadingSubmission) error {
	for _, existing := range f.subs {
		if existing.AccountID != sub.AccountID {
			continue
		}
		if sub.BookID != nil && existing.BookID != nil && *existing.BookID == *sub.BookID {
			return repository.ErrDuplicateSubmission
		}
		if sub.CustomBookID != nil && existing.CustomBookID != nil && *existing.CustomBookID == *sub.CustomBookID {
			return repository.ErrDuplicateSubmission
		}
	}
	f.nextID++
	sub.ID = f.nextID
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeReadingSubmissionStore) GetByID(_ context.Context, id int64) (*model.ReadingSubmission, error) {
	for _, sub := range f.subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, nil
}

func (f *fakeReadingSubmissionStore) UpdateVoiceObjectKey(_ context.Context, id int64, objectKey string) error {
	for _, sub := range f.subs {
		if sub.ID == id {
			sub.VoiceObjectKey = objectKey
		}
	}
	return nil
}

func (f *fakeReadingSubmissionStore) UpdatePageCount(_ context.Context, id int64, pageCount int) error {
	for _, sub := range f.subs {
		if sub.ID == id {
			sub.PageCount = &pageCount
		}
	}
	return nil
}

type fakeCustomBookStore struct {
	books  map[string]*model.CustomBook
	nextID int64
}

func newFakeCustomBookStore() *fakeCustomBookStore {
	return &fakeCustomBookStore{books: make(map[string]*model.CustomBook)}
}

func (f *fakeCustomBookStore) GetOrCreate(_ context.Context, createdBy int64, month, title string) (*model.CustomBook, error) {
	key := month + "/" + title
	if book, ok := f.books[key]; ok {
		return book, nil
	}
	f.nextID++
	book := &model.CustomBook{ID: f.nextID, Title: title, Month: month, CreatedBy: createdBy}
	f.books[key] = book
	return book, nil
}

func newReadingFixture() (*ReadingService, *fakeReadingSubmissionStore, *fakeCustomBookStore, *fakeObjectStore) {
	subs := &fakeReadingSubmissionStore{}
	customBooks := newFakeCustomBookStore()
	store := newFakeObjectStore()
	svc := NewReadingService(subs, customBooks, store, zap.NewNop())
	return svc, subs, customBooks, store
}

func TestSubmitVoice(t *testing.T) {
	ctx := context.Background()
	account := &model.Account{ID: 42, Role: model.RoleStudent}
	voice := []byte("ogg bytes")
	bookID := int64(5)

	t.Run("with catalog book", func(t *testing.T) {
		svc, _, _, store := newReadingFixture()

		sub, err := svc.SubmitVoice(ctx, account, "March", &bookID, "", voice, "uniq1")
		require.NoError(t, err)
		require.NotNil(t, sub.BookID)
		assert.Equal(t, bookID, *sub.BookID)
		assert.Nil(t, sub.CustomBookID)
		assert.Contains(t, store.objects, sub.VoiceObjectKey)
		// Количество страниц дозаполняется следующим шагом диалога
		assert.Nil(t, sub.PageCount)
	})

	t.Run("with custom book", func(t *testing.T) {
		svc, _, customBooks, _ := newReadingFixture()

		sub, err := svc.SubmitVoice(ctx, account, "March", nil, "Bobomning ertaklari", voice, "uniq1")
		require.NoError(t, err)
		assert.Nil(t, sub.BookID)
		require.NotNil(t, sub.CustomBookID)
		assert.Len(t, customBooks.books, 1)
	})

	t.Run("repeated custom title reuses the record", func(t *testing.T) {
		svc, _, customBooks, _ := newReadingFixture()
		other := &model.Account{ID: 43, Role: model.RoleStudent}

		first, err := svc.SubmitVoice(ctx, account, "March", nil, "Bobomning ertaklari", voice, "uniq1")
		require.NoError(t, err)
		second, err := svc.SubmitVoice(ctx, other, "March", nil, "Bobomning ertaklari", voice, "uniq2")
		require.NoError(t, err)

		assert.Equal(t, *first.CustomBookID, *second.CustomBookID)
		assert.Len(t, customBooks.books, 1)
	})

	t.Run("neither book nor custom title", func(t *testing.T) {
		svc, _, _, _ := newReadingFixture()

		_, err := svc.SubmitVoice(ctx, account, "March", nil, "", voice, "uniq1")
		assert.ErrorIs(t, err, ErrBookNotChosen)
	})

	t.Run("both book and custom title", func(t *testing.T) {
		svc, _, _, _ := newReadingFixture()

		_, err := svc.SubmitVoice(ctx, account, "March", &bookID, "Bobomning ertaklari", voice, "uniq1")
		assert.ErrorIs(t, err, ErrBookNotChosen)
	})

	t.Run("duplicate book submission", func(t *testing.T) {
		svc, _, _, _ := newReadingFixture()

		_, err := svc.SubmitVoice(ctx, account, "March", &bookID, "", voice, "uniq1")
		require.NoError(t, err)
		_, err = svc.SubmitVoice(ctx, account, "March", &bookID, "", voice, "uniq2")
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})
}

func TestAttachPageCount(t *testing.T) {
	ctx := context.Background()
	account := &model.Account{ID: 42, Role: model.RoleStudent}
	bookID := int64(5)

	t.Run("records pages on an existing submission", func(t *testing.T) {
		svc, subs, _, _ := newReadingFixture()

		sub, err := svc.SubmitVoice(ctx, account, "March", &bookID, "", []byte("ogg"), "uniq1")
		require.NoError(t, err)

		require.NoError(t, svc.AttachPageCount(ctx, sub.ID, 45))

		stored, err := subs.GetByID(ctx, sub.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PageCount)
		assert.Equal(t, 45, *stored.PageCount)
	})

	t.Run("unknown submission", func(t *testing.T) {
		svc, _, _, _ := newReadingFixture()

		err := svc.AttachPageCount(ctx, 99, 45)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
