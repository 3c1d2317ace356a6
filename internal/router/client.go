package router

import (
	"github.com/deppfellow/tacomemo/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerClientRoutes serves uploads and the React application. The
// catch-all only answers GET and HEAD; echo prefers every static and
// parameterised route above over it.
func registerClientRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/uploads/*", h.Static.ServeUpload)
	r.HEAD("/uploads/*", h.Static.ServeUpload)

	r.GET("/*", h.Static.ServeClient)
	r.HEAD("/*", h.Static.ServeClient)
}
