package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestMemoryStore_ServerAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().WithClock(fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))

	doc, err := store.Insert(ctx, "things", map[string]any{
		"name":      "kept",
		"id":        "client-id",
		"createdAt": "1999-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.NotEqual(t, "client-id", doc.ID)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 1, 0, time.UTC), doc.CreatedAt)
	assert.Equal(t, map[string]any{"name": "kept"}, doc.Data)
}

func TestMemoryStore_UpdateRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().WithClock(fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))

	doc, err := store.Insert(ctx, "things", map[string]any{"a": "1", "b": "2"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, "things", doc.ID, map[string]any{"b": "3"})
	require.NoError(t, err)

	assert.Equal(t, doc.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(doc.UpdatedAt))
	assert.Equal(t, map[string]any{"a": "1", "b": "3"}, updated.Data)
}

func TestMemoryStore_MissingID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "things", "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(ctx, "things", "nope", map[string]any{"a": "1"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "things", "nope"), ErrNotFound)
}

func TestMemoryStore_ListOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first, _ := store.Insert(ctx, "things", map[string]any{"n": "1"})
	second, _ := store.Insert(ctx, "things", map[string]any{"n": "2"})
	third, _ := store.Insert(ctx, "things", map[string]any{"n": "3"})

	docs, err := store.List(ctx, "things", OrderInserted)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, ids(docs))

	docs, err = store.List(ctx, "things", OrderNewestFirst)
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, ids(docs))

	require.NoError(t, store.Delete(ctx, "things", second.ID))

	docs, err = store.List(ctx, "things", OrderInserted)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, third.ID}, ids(docs))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	doc, _ := store.Insert(ctx, "things", map[string]any{"n": "1"})
	doc.Data["n"] = "changed"

	stored, err := store.Get(ctx, "things", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", stored.Data["n"])
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Insert(ctx, "things", map[string]any{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollection_DecodesEntities(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewMemoryStore())

	created, err := repos.Invitations.Insert(ctx, map[string]any{
		"name":    "Alice",
		"status":  model.StatusAttending,
		"message": "Congrats!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.CreatedAt)
	assert.Equal(t, "Alice", created.Name)

	list, err := repos.Invitations.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	item, err := decode[model.MapLink](&Document{
		ID:   "abc",
		Data: map[string]any{"url": "https://maps.example.com", "extra": 12},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", item.ID)
	assert.Equal(t, "https://maps.example.com", item.URL)
}

func TestTransferTargetsWithBanks(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewMemoryStore())

	bank, err := repos.Banks.Insert(ctx, map[string]any{"bankName": "BCA", "logoUrl": "https://cdn.example.com/bca.png"})
	require.NoError(t, err)

	_, err = repos.Transfers[model.SlotPrimary].Insert(ctx, map[string]any{
		"accountHolderName": "Bride",
		"accountNumber":     "123",
		"bankAccountRef":    bank.ID,
	})
	require.NoError(t, err)

	_, err = repos.Transfers[model.SlotPrimary].Insert(ctx, map[string]any{
		"accountHolderName": "Groom",
		"accountNumber":     "456",
		"bankAccountRef":    "deleted-bank",
	})
	require.NoError(t, err)

	targets, err := repos.TransferTargetsWithBanks(ctx, model.SlotPrimary)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	require.NotNil(t, targets[0].Bank)
	assert.Equal(t, "BCA", targets[0].Bank.BankName)
	assert.Nil(t, targets[1].Bank)

	empty, err := repos.TransferTargetsWithBanks(ctx, model.SlotSecondary)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func ids(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.ID)
	}
	return out
}
