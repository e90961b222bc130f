package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/deppfellow/wedding-backend/internal/lib/identity"
	"github.com/deppfellow/wedding-backend/internal/server"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies bearer tokens against the identity provider.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth rejects requests without a valid "Authorization: Bearer"
// token. On success the user id and email are stored on the echo context
// and added to the request logger.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, bearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			logger.Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("missing bearer token")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		user, err := auth.server.Identity.VerifyToken(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				logger.Warn().
					Str("function", "RequireAuth").
					Dur("duration", time.Since(start)).
					Msg("invalid bearer token")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}
			return err
		}

		c.Set(UserIDKey, user.UserID)
		c.Set(UserEmailKey, user.Email)

		userLogger := logger.With().Str("user_id", user.UserID).Logger()
		setLogger(c, &userLogger)

		userLogger.Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated")

		return next(c)
	}
}
