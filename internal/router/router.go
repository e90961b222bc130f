// Package router builds the echo instance: global middleware, the error
// handler and every route with its access policy.
package router

import (
	"github.com/deppfellow/wedding-backend/internal/handler"
	"github.com/deppfellow/wedding-backend/internal/middleware"
	"github.com/deppfellow/wedding-backend/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Timeout(),
	)

	registerSystemRoutes(router, h)

	routes := &registrar{
		echo:  router,
		admin: middlewares.Auth.RequireAuth,
	}
	registerAuthRoutes(routes, h, middlewares.RateLimit.LoginLimiter())
	registerContentRoutes(routes, h)

	return router
}
