package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestHTTPError_WithMessageCopies(t *testing.T) {
	base := NewNotFoundError("not found", false, nil)
	custom := base.WithMessage("invitation not found")

	assert.Equal(t, "not found", base.Message)
	assert.Equal(t, "invitation not found", custom.Message)
	assert.Equal(t, http.StatusNotFound, custom.Status)
	assert.Equal(t, "NOT_FOUND", custom.Code)
}

func TestHTTPError_IsMatchesType(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewForbiddenError("nope", false))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestNewBadRequestError_CustomCode(t *testing.T) {
	code := "INVITATION_INVALID"
	err := NewBadRequestError("bad", true, &code, []FieldError{{Field: "name", Error: "is required"}}, nil)

	assert.Equal(t, code, err.Code)
	assert.Len(t, err.Errors, 1)
	assert.True(t, err.Override)
}

func TestUpstreamError(t *testing.T) {
	assert.Nil(t, NewUpstreamError(ServiceStore, nil))

	err := NewUpstreamError(ServiceMedia, context.DeadlineExceeded)
	assert.EqualError(t, err, "asset host request failed: context deadline exceeded")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, ServiceMedia, up.Service)
}

func TestStatusConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, NewBadGatewayError("x").Status)
	assert.Equal(t, http.StatusServiceUnavailable, NewServiceUnavailableError("x").Status)
	assert.Equal(t, http.StatusTooManyRequests, NewTooManyRequestsError("x").Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", NewInternalServerError().Code)
}
