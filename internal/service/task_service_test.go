package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObjectStore struct {
	objects map[string][]byte
	putErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Put(_ context.Context, key string, data []byte, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return data, nil
}

func (f *fakeObjectStore) Stat(_ context.Context, key string) (int64, error) {
	data, ok := f.objects[key]
	if !ok {
		return 0, fmt.Errorf("object %s not found", key)
	}
	return int64(len(data)), nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

type fakeTaskSubmissionStore struct {
	created []*model.TaskSubmission
	nextID  int64
}

func (f *fakeTaskSubmissionStore) Create(_ context.Context, sub *model.TaskSubmission) error {
	for _, existing := range f.created {
		if existing.AccountID == sub.AccountID && existing.TaskName == sub.TaskName {
			return repository.ErrDuplicateSubmission
		}
	}
	f.nextID++
	sub.ID = f.nextID
	f.created = append(f.created, sub)
	return nil
}

func TestValidateVideoNote(t *testing.T) {
	svc := NewTaskService(&fakeTaskSubmissionStore{}, newFakeObjectStore(), zap.NewNop())

	tests := []struct {
		name      string
		duration  int
		fileSize  int64
		forwarded bool
		wantErr   error
	}{
		{name: "ok", duration: 59, fileSize: 5 * 1024 * 1024},
		{name: "at the duration limit", duration: 60, fileSize: 1024},
		{name: "too long", duration: 61, fileSize: 1024, wantErr: ErrVideoTooLong},
		{name: "too large", duration: 30, fileSize: 25 * 1024 * 1024, wantErr: ErrVideoTooLarge},
		{name: "forwarded", duration: 30, fileSize: 1024, forwarded: true, wantErr: ErrForwardedVideo},
		{name: "forwarded wins over other violations", duration: 90, fileSize: 25 * 1024 * 1024, forwarded: true, wantErr: ErrForwardedVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateVideoNote(tt.duration, tt.fileSize, tt.forwarded)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitVideo(t *testing.T) {
	ctx := context.Background()
	account := &model.Account{ID: 42, Role: model.RoleStudent}
	video := []byte("video bytes")

	t.Run("stores file and creates submission", func(t *testing.T) {
		store := newFakeObjectStore()
		subs := &fakeTaskSubmissionStore{}
		svc := NewTaskService(subs, store, zap.NewNop())

		sub, err := svc.SubmitVideo(ctx, account, "Yugurish", video)
		require.NoError(t, err)
		assert.Equal(t, int64(42), sub.AccountID)
		assert.Equal(t, "Yugurish", sub.TaskName)
		assert.Len(t, store.objects, 1)
		assert.Contains(t, store.objects, sub.ObjectKey)
	})

	t.Run("duplicate deletes the orphan file", func(t *testing.T) {
		store := newFakeObjectStore()
		subs := &fakeTaskSubmissionStore{}
		svc := NewTaskService(subs, store, zap.NewNop())

		_, err := svc.SubmitVideo(ctx, account, "Yugurish", video)
		require.NoError(t, err)

		_, err = svc.SubmitVideo(ctx, account, "Yugurish", video)
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
		// Файл дубликата не остаётся в хранилище
		assert.Len(t, store.objects, 1)
	})

	t.Run("different task is a separate submission", func(t *testing.T) {
		store := newFakeObjectStore()
		subs := &fakeTaskSubmissionStore{}
		svc := NewTaskService(subs, store, zap.NewNop())

		_, err := svc.SubmitVideo(ctx, account, "Yugurish", video)
		require.NoError(t, err)
		_, err = svc.SubmitVideo(ctx, account, "Mashqlar", video)
		require.NoError(t, err)
		assert.Len(t, subs.created, 2)
	})
}
