// Package middleware contains the echo middleware shared by every route:
// request ids, the request-scoped logger, New Relic tracing, Prometheus
// metrics and the global error handler.
package middleware
