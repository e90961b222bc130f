package handler

import (
	"net/http"

	"github.com/deppfellow/wedding-backend/internal/middleware"
	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/server"
	"github.com/deppfellow/wedding-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) SignUp() echo.HandlerFunc {
	return Handle[model.CredentialsRequest, *model.CredentialsRequest, *model.TokenResponse](h.Handler, func(c echo.Context, req *model.CredentialsRequest) (*model.TokenResponse, error) {
		return h.auth.SignUp(c.Request().Context(), req)
	}, http.StatusCreated)
}

func (h *AuthHandler) Login() echo.HandlerFunc {
	return Handle[model.CredentialsRequest, *model.CredentialsRequest, *model.TokenResponse](h.Handler, func(c echo.Context, req *model.CredentialsRequest) (*model.TokenResponse, error) {
		return h.auth.Login(c.Request().Context(), req)
	}, http.StatusOK)
}

// Me returns the identity RequireAuth attached to the request.
func (h *AuthHandler) Me() echo.HandlerFunc {
	return Handle[model.EmptyRequest, *model.EmptyRequest, *model.MeResponse](h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*model.MeResponse, error) {
		return &model.MeResponse{
			UserID: middleware.GetUserID(c),
			Email:  middleware.GetUserEmail(c),
		}, nil
	}, http.StatusOK)
}
