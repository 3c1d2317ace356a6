package middleware

import (
	"time"

	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latency per matched route.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer m.server.Metrics.TrackInFlight()()
			start := time.Now()

			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.server.Metrics.ObserveHTTPRequest(c.Request().Method, route, statusOf(c, err), time.Since(start))

			return err
		}
	}
}
