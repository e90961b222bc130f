// Package service contains the business logic between the handlers and
// the repositories.
//
// Resource is the generic create/list/update/delete flow every entity kind
// shares; the other services add what a kind needs on top of it.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
)

// Resource runs the generic flow over one collection.
type Resource[T any] struct {
	collection *repository.Collection[T]
	entity     string

	// beforeWrite may add derived fields on create and update.
	beforeWrite func(fields map[string]any) error
	// afterCreate runs once the document is stored. Its failures are the
	// hook's own business and never fail the request.
	afterCreate func(ctx context.Context, item *T)
}

// NewResource creates a Resource. entity names the kind in error messages.
func NewResource[T any](collection *repository.Collection[T], entity string) *Resource[T] {
	return &Resource[T]{collection: collection, entity: entity}
}

func (r *Resource[T]) Entity() string {
	return r.entity
}

func (r *Resource[T]) Create(ctx context.Context, req model.Writable) (*T, error) {
	fields := req.Fields()
	if r.beforeWrite != nil {
		if err := r.beforeWrite(fields); err != nil {
			return nil, err
		}
	}

	item, err := r.collection.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}

	if r.afterCreate != nil {
		r.afterCreate(ctx, item)
	}

	return item, nil
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.collection.List(ctx)
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	item, err := r.collection.Get(ctx, id)
	if err != nil {
		return nil, r.notFound(err)
	}
	return item, nil
}

// Update overwrites the fields named by req and refreshes updatedAt.
func (r *Resource[T]) Update(ctx context.Context, id string, req model.Writable) (*T, error) {
	fields := req.Fields()
	if r.beforeWrite != nil {
		if err := r.beforeWrite(fields); err != nil {
			return nil, err
		}
	}

	item, err := r.collection.Update(ctx, id, fields)
	if err != nil {
		return nil, r.notFound(err)
	}
	return item, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.notFound(r.collection.Delete(ctx, id))
}

func (r *Resource[T]) notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", r.entity), true, nil)
	}
	return err
}
