package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process. It backs local development and
// tests; nothing survives a restart.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]*Document
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]*Document),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, data map[string]any) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	doc := &Document{
		ID:        uuid.NewString(),
		Data:      sanitize(data),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.collections[collection] = append(s.collections[collection], doc)

	return cloneDocument(doc), nil
}

func (s *MemoryStore) List(ctx context.Context, collection string, order Order) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.collections[collection]
	docs := make([]Document, 0, len(stored))
	for _, doc := range stored {
		docs = append(docs, *cloneDocument(doc))
	}

	if order == OrderNewestFirst {
		slices.Reverse(docs)
	}

	return docs, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(collection, id)
	if i < 0 {
		return nil, ErrNotFound
	}

	return cloneDocument(s.collections[collection][i]), nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(collection, id)
	if i < 0 {
		return nil, ErrNotFound
	}

	doc := s.collections[collection][i]
	maps.Copy(doc.Data, sanitize(fields))
	doc.UpdatedAt = s.now()

	return cloneDocument(doc), nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(collection, id)
	if i < 0 {
		return ErrNotFound
	}

	s.collections[collection] = slices.Delete(s.collections[collection], i, i+1)

	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) indexOf(collection, id string) int {
	return slices.IndexFunc(s.collections[collection], func(doc *Document) bool {
		return doc.ID == id
	})
}

func cloneDocument(doc *Document) *Document {
	out := *doc
	out.Data = maps.Clone(doc.Data)
	return &out
}
