package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Counters(t *testing.T) {
	m := New("tacomemo")

	m.ObserveHTTPRequest(http.MethodGet, "/carousel-images", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/carousel-images", http.StatusOK, 20*time.Millisecond)
	m.ObserveUpstream("catalog/tags", OutcomeFailure, time.Second)
	m.RecordDelivery(OutcomeSuccess)
	m.RecordUpload(OutcomeRejected)

	body := scrape(t, m)

	assert.Contains(t, body, `tacomemo_http_requests_total{method="GET",route="/carousel-images",status="200"} 2`)
	assert.Contains(t, body, `tacomemo_catalog_upstream_requests_total{outcome="failure",resource="catalog/tags"} 1`)
	assert.Contains(t, body, `tacomemo_contact_email_deliveries_total{outcome="success"} 1`)
	assert.Contains(t, body, `tacomemo_carousel_uploads_total{outcome="rejected"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_InFlight(t *testing.T) {
	m := New("tacomemo")

	done := m.TrackInFlight()
	assert.Contains(t, scrape(t, m), "tacomemo_http_requests_in_flight 1")

	done()
	assert.Contains(t, scrape(t, m), "tacomemo_http_requests_in_flight 0")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, 0)
		m.ObserveUpstream("catalog/tags", OutcomeSuccess, 0)
		m.RecordDelivery(OutcomeSuccess)
		m.RecordUpload(OutcomeSuccess)
		m.TrackInFlight()()
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
