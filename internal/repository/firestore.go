package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deppfellow/wedding-backend/internal/errs"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore maps each collection onto a Firestore collection. The
// timestamps live in the document under createdAt and updatedAt and are set
// with server timestamps.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Insert(ctx context.Context, collection string, data map[string]any) (*Document, error) {
	payload := sanitize(data)
	payload[fieldCreatedAt] = firestore.ServerTimestamp
	payload[fieldUpdatedAt] = firestore.ServerTimestamp

	ref := s.client.Collection(collection).NewDoc()
	if _, err := ref.Create(ctx, payload); err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("insert into %s: %w", collection, err))
	}

	return s.read(ctx, "insert", collection, ref)
}

func (s *FirestoreStore) List(ctx context.Context, collection string, order Order) ([]Document, error) {
	direction := firestore.Asc
	if order == OrderNewestFirst {
		direction = firestore.Desc
	}

	snaps, err := s.client.Collection(collection).OrderBy(fieldCreatedAt, direction).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("list %s: %w", collection, err))
	}

	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, *fromSnapshot(snap))
	}

	return docs, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	return s.read(ctx, "get", collection, s.client.Collection(collection).Doc(id))
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) (*Document, error) {
	ref := s.client.Collection(collection).Doc(id)
	if ref == nil {
		return nil, ErrNotFound
	}

	var updates []firestore.Update
	for key, value := range sanitize(fields) {
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	updates = append(updates, firestore.Update{Path: fieldUpdatedAt, Value: firestore.ServerTimestamp})

	// Update fails with NotFound when the document does not exist.
	if _, err := ref.Update(ctx, updates); err != nil {
		return nil, s.classify("update", collection, err)
	}

	return s.read(ctx, "update", collection, ref)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	ref := s.client.Collection(collection).Doc(id)
	if ref == nil {
		return ErrNotFound
	}

	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		return s.classify("delete from", collection, err)
	}

	return nil
}

// Ping reads the first collection id, which needs a working connection and
// valid credentials.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) read(ctx context.Context, op, collection string, ref *firestore.DocumentRef) (*Document, error) {
	if ref == nil {
		return nil, ErrNotFound
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, s.classify(op, collection, err)
	}

	return fromSnapshot(snap), nil
}

func (s *FirestoreStore) classify(op, collection string, err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("%s %s: %w", op, collection, err))
}

func fromSnapshot(snap *firestore.DocumentSnapshot) *Document {
	data := snap.Data()

	doc := &Document{
		ID:        snap.Ref.ID,
		Data:      sanitize(data),
		CreatedAt: snap.CreateTime,
		UpdatedAt: snap.UpdateTime,
	}

	if created, ok := data[fieldCreatedAt].(time.Time); ok {
		doc.CreatedAt = created
	}
	if updated, ok := data[fieldUpdatedAt].(time.Time); ok {
		doc.UpdatedAt = updated
	}

	return doc
}
