package model

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/labstack/echo/v4"
)

// NoFileError is returned when a multipart upload has no "file" part.
func NoFileError() error {
	return errs.NewBadRequestError("No file uploaded.", true, nil,
		[]errs.FieldError{{Field: "file", Error: "is required"}}, nil)
}

// UploadRequest is a multipart upload: one "file" part plus text fields.
// Which text fields are accepted depends on the media kind and is checked by
// the service.
type UploadRequest struct {
	File   *multipart.FileHeader
	Values map[string]string
}

func (r *UploadRequest) BindFrom(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return errs.NewBadRequestError("Invalid multipart body", false, nil, nil, nil)
	}
	r.File = file

	form, err := c.MultipartForm()
	if err != nil {
		return errs.NewBadRequestError("Invalid multipart body", false, nil, nil, nil)
	}

	r.Values = make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			r.Values[key] = strings.TrimSpace(values[0])
		}
	}

	return nil
}

func (r *UploadRequest) Validate() error {
	if r.File == nil {
		return NoFileError()
	}
	return nil
}

// UpdateMediaRequest changes the text fields of a media document. The body
// is a flat JSON object or a form.
type UpdateMediaRequest struct {
	IDParam
	Values map[string]string
}

func (r *UpdateMediaRequest) BindFrom(c echo.Context) error {
	r.ID = c.Param("id")
	r.Values = map[string]string{}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		params, err := c.FormParams()
		if err != nil {
			return errs.NewBadRequestError("Invalid form body", false, nil, nil, nil)
		}
		for key := range params {
			r.Values[key] = strings.TrimSpace(params.Get(key))
		}
		return nil
	}

	if c.Request().ContentLength == 0 {
		return nil
	}

	if err := c.Echo().JSONSerializer.Deserialize(c, &r.Values); err != nil {
		return errs.NewBadRequestError("Body must be a JSON object of text fields", false, nil, nil, nil)
	}

	return nil
}

func (r *UpdateMediaRequest) Validate() error {
	if r.ID == "" {
		return errs.NewBadRequestError("Validation failed", true, nil,
			[]errs.FieldError{{Field: "id", Error: "is required"}}, nil)
	}
	if len(r.Values) == 0 {
		return errs.NewBadRequestError("No fields to update", false, nil, nil, nil)
	}
	return nil
}
