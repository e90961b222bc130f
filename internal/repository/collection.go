package repository

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Collection is a typed view over one collection. T is an entity struct
// embedding model.Base; documents are decoded into it by json field name.
type Collection[T any] struct {
	store DocumentStore
	name  string
	order Order
}

func NewCollection[T any](store DocumentStore, name string, order Order) *Collection[T] {
	return &Collection[T]{store: store, name: name, order: order}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) Insert(ctx context.Context, fields map[string]any) (*T, error) {
	doc, err := c.store.Insert(ctx, c.name, fields)
	if err != nil {
		return nil, err
	}
	return decode[T](doc)
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.name, c.order)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(docs))
	for i := range docs {
		item, err := decode[T](&docs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return decode[T](doc)
}

func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	doc, err := c.store.Update(ctx, c.name, id, fields)
	if err != nil {
		return nil, err
	}
	return decode[T](doc)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func decode[T any](doc *Document) (*T, error) {
	input := maps.Clone(doc.Data)
	if input == nil {
		input = map[string]any{}
	}
	input[fieldID] = doc.ID
	input[fieldCreatedAt] = doc.CreatedAt
	input[fieldUpdatedAt] = doc.UpdatedAt

	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", doc.ID, err)
	}

	return &out, nil
}
