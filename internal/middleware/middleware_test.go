package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/deppfellow/tacomemo/internal/metrics"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/deppfellow/tacomemo/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) (*echo.Echo, *server.Server) {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config:  config.Default(),
		Logger:  &logger,
		Metrics: metrics.New("test"),
	}

	mws := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler
	e.Use(
		RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Metrics.Observe(),
	)

	return e, s
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler_ClientError(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/bad", func(c echo.Context) error {
		return errs.NewBadRequestError("No image provided.", true, nil, nil)
	})

	rec := serve(e, http.MethodGet, "/bad")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "No image provided.", body.Message)
	assert.Equal(t, "BAD_REQUEST", body.Code)
	assert.True(t, body.Override)
}

func TestGlobalErrorHandler_HidesServerErrors(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/boom", func(c echo.Context) error {
		return fmt.Errorf("%w: %w", errs.ErrUpstream, errors.New("zelty said 401 with secret details"))
	})

	rec := serve(e, http.MethodGet, "/boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestGlobalErrorHandler_LogsStoreFailure(t *testing.T) {
	e, s := newTestEcho(t)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s.Logger = &logger

	e.GET("/locked", func(c echo.Context) error {
		return fmt.Errorf("%w: list: %w", errs.ErrStore, &sqlerr.Error{Code: sqlerr.Busy, Message: "database is locked"})
	})

	rec := serve(e, http.MethodGet, "/locked")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "locked")

	logs := buf.String()
	assert.Contains(t, logs, `"error_kind":"store"`)
	assert.Contains(t, logs, `"sql_code":"busy"`)
	assert.Contains(t, logs, "database is locked")
}

func TestGlobalErrorHandler_RouteNotFound(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := serve(e, http.MethodGet, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestGlobalErrorHandler_EchoError(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/large", func(c echo.Context) error {
		return echo.ErrStatusRequestEntityTooLarge
	})

	rec := serve(e, http.MethodGet, "/large")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", decodeError(t, rec).Code)
}

func TestRequestID(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/id", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := serve(e, http.MethodGet, "/id")
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestContextEnhancer_StoresLogger(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/logger", func(c echo.Context) error {
		fromEcho := GetLogger(c)
		fromCtx := zerolog.Ctx(c.Request().Context())
		if fromEcho == nil || fromCtx == nil {
			return errors.New("logger missing")
		}
		return c.NoContent(http.StatusNoContent)
	})

	rec := serve(e, http.MethodGet, "/logger")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetLogger_Fallback(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, GetLogger(c))
}

func TestMetricsMiddleware_RecordsRouteTemplate(t *testing.T) {
	e, s := newTestEcho(t)
	e.DELETE("/delete-carousel-image/:id", func(c echo.Context) error {
		return errs.NewNotFoundError("No image found with that ID.", true, nil)
	})

	serve(e, http.MethodDelete, "/delete-carousel-image/42")

	rec := httptest.NewRecorder()
	s.Metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(),
		`test_http_requests_total{method="DELETE",route="/delete-carousel-image/:id",status="404"} 1`)
}
