package observability

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/photos/:id", "GET", 200, 20*time.Millisecond)
	m.RecordRequest("/api/photos/:id", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/photos/:id", "GET", "NOT_FOUND")
	m.RecordAuthFailure("expired")
	m.RecordTokensIssued("login")
	m.RecordEvent("photo_deleted", nil)
	m.RecordEvent("photo_deleted", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/photos/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("/api/photos/:id", "GET", "NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authFailures.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tokensIssued.WithLabelValues("login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsHandled.WithLabelValues("photo_deleted", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsHandled.WithLabelValues("photo_deleted", "error")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordAuthFailure("expired")
		m.RecordTokensIssued("login")
		m.RecordEvent("x", nil)
	})
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.RecordAuthFailure("wrong_scope")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), `auth_failures_total{reason="wrong_scope"} 1`))
}
