// Package router builds the echo instance: global middleware, the error
// handler and every route.
package router

import (
	"github.com/deppfellow/tacomemo/internal/handler"
	"github.com/deppfellow/tacomemo/internal/middleware"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the context logger is
	// built, and the logger before anything logs.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Observe(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerAPIRoutes(router, middlewares, h)
	registerClientRoutes(router, h)

	return router
}
