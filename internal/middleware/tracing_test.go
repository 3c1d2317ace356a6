package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/deppfellow/tacomemo/internal/handler"
	"github.com/deppfellow/tacomemo/internal/metrics"
	"github.com/deppfellow/tacomemo/internal/middleware"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRequest struct{}

func (r *pingRequest) Validate() error { return nil }

func newTracedEcho(t *testing.T, fail error) (*echo.Echo, *int) {
	t.Helper()

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("tacomemo-test"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	notices := 0
	t.Cleanup(middleware.SetNoticeError(func(*newrelic.Transaction, error) { notices++ }))

	logger := zerolog.Nop()
	s := &server.Server{Config: config.Default(), Logger: &logger, Metrics: metrics.New("test")}
	mws := middleware.NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler
	e.Use(
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				txn := app.StartTransaction(c.Request().Method + " " + c.Path())
				defer txn.End()
				c.SetRequest(c.Request().WithContext(newrelic.NewContext(c.Request().Context(), txn)))
				return next(c)
			}
		},
		mws.Tracing.EnhanceTracing(),
	)

	e.GET("/ping", handler.Handle(handler.NewHandler(s), func(c echo.Context, _ *pingRequest) (*struct{}, error) {
		return nil, fail
	}, http.StatusOK, &pingRequest{}))

	return e, &notices
}

func TestEnhanceTracing_NoticesHandlerFailureOnce(t *testing.T) {
	e, notices := newTracedEcho(t, fmt.Errorf("%w: resend down", errs.ErrDelivery))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, *notices)
}

func TestEnhanceTracing_IgnoresClientErrors(t *testing.T) {
	e, notices := newTracedEcho(t, errs.NewBadRequestError("No image provided.", true, nil, nil))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, *notices)
}
