package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// CreateMedia accepts a multipart upload and answers 201 with the stored
// document, including its public URL.
func CreateMedia[T any](h Handler, svc *service.MediaService[T]) echo.HandlerFunc {
	return Handle[model.UploadRequest, *model.UploadRequest, *T](h, func(c echo.Context, req *model.UploadRequest) (*T, error) {
		return svc.Create(c.Request().Context(), req)
	}, http.StatusCreated)
}

func ListMedia[T any](h Handler, svc *service.MediaService[T]) echo.HandlerFunc {
	return ListResource(h, svc.List)
}

// UpdateMedia changes the text fields of a media document. The body is a
// JSON object or a form.
func UpdateMedia[T any](h Handler, svc *service.MediaService[T]) echo.HandlerFunc {
	return Handle[model.UpdateMediaRequest, *model.UpdateMediaRequest, *model.MessageResponse](h, func(c echo.Context, req *model.UpdateMediaRequest) (*model.MessageResponse, error) {
		if _, err := svc.Update(c.Request().Context(), req); err != nil {
			return nil, err
		}

		return &model.MessageResponse{Message: fmt.Sprintf("%s updated successfully", svc.Entity())}, nil
	}, http.StatusOK)
}

// DeleteMedia removes the document, then its file.
func DeleteMedia[T any](h Handler, svc *service.MediaService[T]) echo.HandlerFunc {
	return deleteHandler(h, svc.Entity(), svc.Delete)
}
