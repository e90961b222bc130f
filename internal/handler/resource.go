package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/labstack/echo/v4"
)

// Writer is the write side of a JSON resource service.
type Writer[T any] interface {
	Entity() string
	Create(ctx context.Context, req model.Writable) (*T, error)
	Update(ctx context.Context, id string, req model.Writable) (*T, error)
	Delete(ctx context.Context, id string) error
}

// CreateResource binds Req, stores it and answers 201 {message, id}.
func CreateResource[Req any, PReq interface {
	*Req
	model.Writable
}, T any](h Handler, svc Writer[T]) echo.HandlerFunc {
	return Handle[Req, PReq, *model.CreatedResponse](h, func(c echo.Context, req PReq) (*model.CreatedResponse, error) {
		item, err := svc.Create(c.Request().Context(), req)
		if err != nil {
			return nil, err
		}

		return &model.CreatedResponse{
			Message: fmt.Sprintf("%s added", svc.Entity()),
			ID:      documentID(item),
		}, nil
	}, http.StatusCreated)
}

// ListResource answers 200 with every document of the collection. An empty
// collection is [] rather than null.
func ListResource[T any](h Handler, list func(ctx context.Context) ([]T, error)) echo.HandlerFunc {
	return Handle[model.EmptyRequest, *model.EmptyRequest, []T](h, func(c echo.Context, _ *model.EmptyRequest) ([]T, error) {
		items, err := list(c.Request().Context())
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}, http.StatusOK)
}

// UpdateResource binds Req, including the :id path parameter, and
// overwrites the fields it carries.
func UpdateResource[Req any, PReq interface {
	*Req
	model.Writable
	model.EntityID
}, T any](h Handler, svc Writer[T]) echo.HandlerFunc {
	return Handle[Req, PReq, *model.MessageResponse](h, func(c echo.Context, req PReq) (*model.MessageResponse, error) {
		if _, err := svc.Update(c.Request().Context(), req.EntityID(), req); err != nil {
			return nil, err
		}

		return &model.MessageResponse{Message: fmt.Sprintf("%s updated successfully", svc.Entity())}, nil
	}, http.StatusOK)
}

func DeleteResource[T any](h Handler, svc Writer[T]) echo.HandlerFunc {
	return deleteHandler(h, svc.Entity(), svc.Delete)
}

func deleteHandler(h Handler, entity string, del func(ctx context.Context, id string) error) echo.HandlerFunc {
	return Handle[model.IDParam, *model.IDParam, *model.MessageResponse](h, func(c echo.Context, req *model.IDParam) (*model.MessageResponse, error) {
		if err := del(c.Request().Context(), req.ID); err != nil {
			return nil, err
		}

		return &model.MessageResponse{Message: fmt.Sprintf("%s deleted successfully", entity)}, nil
	}, http.StatusOK)
}

func documentID(item any) string {
	if stored, ok := item.(model.Stored); ok {
		return stored.DocumentID()
	}
	return ""
}
