package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "documents",
		ColumnName: "collection",
	}))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "DOCUMENT_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Collection is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "collection", httpErr.Errors[0].Field)
}

func TestHandleError_UniqueViolation(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "23505", TableName: "documents"}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "DOCUMENT_ALREADY_EXISTS", httpErr.Code)
}

func TestHandleError_InvalidTextIsNotFound(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "22P02"}))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	original := errs.NewForbiddenError("no", false)
	assert.Same(t, original, HandleError(original))

	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestMapCodeAndErrCode(t *testing.T) {
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, Other, MapCode("99999"))

	converted := ConvertPgError(&pgconn.PgError{Code: "23514", Severity: "ERROR"})
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}
