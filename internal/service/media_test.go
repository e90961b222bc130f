package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
	"github.com/deppfellow/wedding-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore rejects every insert.
type failingStore struct {
	repository.DocumentStore
}

func (failingStore) Insert(context.Context, string, map[string]any) (*repository.Document, error) {
	return nil, errors.New("store unavailable")
}

func newGiftService(store repository.DocumentStore, host *testutil.FakeMediaHost, queue TaskQueue) *MediaService[model.MediaAsset] {
	logger := zerolog.Nop()
	repos := repository.NewRepositories(store)
	return NewMediaService(repos.Gifts, GiftKind, host, queue, &logger)
}

func TestMediaService_Create(t *testing.T) {
	host := testutil.NewFakeMediaHost()
	svc := newGiftService(repository.NewMemoryStore(), host, nil)

	item, err := svc.Create(context.Background(), &model.UploadRequest{
		File:   testutil.FileHeader(t, "toaster.png", testutil.PNG),
		Values: map[string]string{"linkUrl": "https://shop.example.com/toaster", "label": "Toaster"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/wedding/gifts/asset-1", item.AssetURL)
	assert.Equal(t, "wedding/gifts/asset-1", item.AssetKey)
	assert.Equal(t, "image", item.AssetType)
	assert.Equal(t, "Toaster", item.Label)
	assert.Equal(t, testutil.PNG, host.Uploads[item.AssetKey])
}

func TestMediaService_CreateRejectsBeforeUpload(t *testing.T) {
	tests := []struct {
		name   string
		req    *model.UploadRequest
		status int
	}{
		{
			name:   "no file",
			req:    &model.UploadRequest{Values: map[string]string{"linkUrl": "https://shop.example.com"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing required field",
			req:    &model.UploadRequest{File: testutil.FileHeader(t, "a.png", testutil.PNG), Values: map[string]string{}},
			status: http.StatusBadRequest,
		},
		{
			name: "unknown field",
			req: &model.UploadRequest{File: testutil.FileHeader(t, "a.png", testutil.PNG), Values: map[string]string{
				"linkUrl": "https://shop.example.com", "price": "10",
			}},
			status: http.StatusBadRequest,
		},
		{
			name: "wrong content type",
			req: &model.UploadRequest{File: testutil.FileHeader(t, "a.png", []byte("plain text pretending")), Values: map[string]string{
				"linkUrl": "https://shop.example.com",
			}},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := testutil.NewFakeMediaHost()
			store := repository.NewMemoryStore()
			svc := newGiftService(store, host, nil)

			_, err := svc.Create(context.Background(), tt.req)
			requireStatus(t, err, tt.status)

			assert.Zero(t, host.UploadCount())
			docs, err := store.List(context.Background(), "giftItems", repository.OrderInserted)
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}

func TestMediaService_AudioPolicy(t *testing.T) {
	host := testutil.NewFakeMediaHost()
	logger := zerolog.Nop()
	repos := repository.NewRepositories(repository.NewMemoryStore())
	svc := NewMediaService(repos.Audio, AudioKind, host, nil, &logger)

	_, err := svc.Create(context.Background(), &model.UploadRequest{
		File:   testutil.FileHeader(t, "song.png", testutil.PNG),
		Values: map[string]string{},
	})
	requireStatus(t, err, http.StatusBadRequest)
	assert.Zero(t, host.UploadCount())
}

func TestMediaService_InsertFailureRemovesUpload(t *testing.T) {
	host := testutil.NewFakeMediaHost()
	svc := newGiftService(failingStore{}, host, nil)

	_, err := svc.Create(context.Background(), &model.UploadRequest{
		File:   testutil.FileHeader(t, "a.png", testutil.PNG),
		Values: map[string]string{"linkUrl": "https://shop.example.com"},
	})
	require.Error(t, err)

	assert.Equal(t, 1, host.UploadCount())
	assert.Equal(t, []string{"wedding/gifts/asset-1"}, host.Deleted)
	assert.Empty(t, host.Uploads)
}

func TestMediaService_DeleteQueuesAssetRemoval(t *testing.T) {
	ctx := context.Background()
	host := testutil.NewFakeMediaHost()
	queue := &testutil.FakeQueue{}
	svc := newGiftService(repository.NewMemoryStore(), host, queue)

	item, err := svc.Create(ctx, &model.UploadRequest{
		File:   testutil.FileHeader(t, "a.png", testutil.PNG),
		Values: map[string]string{"linkUrl": "https://shop.example.com"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))

	assert.Equal(t, []string{item.AssetKey}, queue.AssetDeletes)
	assert.Empty(t, host.Deleted)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMediaService_DeleteFallsBackToInline(t *testing.T) {
	ctx := context.Background()
	host := testutil.NewFakeMediaHost()
	svc := newGiftService(repository.NewMemoryStore(), host, &testutil.FakeQueue{Err: errors.New("redis down")})

	item, err := svc.Create(ctx, &model.UploadRequest{
		File:   testutil.FileHeader(t, "a.png", testutil.PNG),
		Values: map[string]string{"linkUrl": "https://shop.example.com"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))
	assert.Equal(t, []string{item.AssetKey}, host.Deleted)
}

func TestMediaService_DeleteMissing(t *testing.T) {
	svc := newGiftService(repository.NewMemoryStore(), testutil.NewFakeMediaHost(), nil)
	requireStatus(t, svc.Delete(context.Background(), "missing"), http.StatusNotFound)
}

func TestMediaService_Update(t *testing.T) {
	ctx := context.Background()
	host := testutil.NewFakeMediaHost()
	svc := newGiftService(repository.NewMemoryStore(), host, nil)

	item, err := svc.Create(ctx, &model.UploadRequest{
		File:   testutil.FileHeader(t, "a.png", testutil.PNG),
		Values: map[string]string{"linkUrl": "https://shop.example.com/a", "label": "A"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &model.UpdateMediaRequest{
		IDParam: model.IDParam{ID: item.ID},
		Values:  map[string]string{"linkUrl": "", "label": "B"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/a", updated.LinkURL)
	assert.Equal(t, "B", updated.Label)
	assert.Equal(t, item.AssetURL, updated.AssetURL)

	_, err = svc.Update(ctx, &model.UpdateMediaRequest{
		IDParam: model.IDParam{ID: item.ID},
		Values:  map[string]string{"assetUrl": "https://evil.example.com"},
	})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Update(ctx, &model.UpdateMediaRequest{
		IDParam: model.IDParam{ID: "missing"},
		Values:  map[string]string{"label": "C"},
	})
	requireStatus(t, err, http.StatusNotFound)
}
