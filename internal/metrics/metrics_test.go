package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperationCountsErrors(t *testing.T) {
	m := New()

	m.ObserveOperation("GetMembers", "", 10*time.Millisecond)
	m.ObserveOperation("GetMembers", "server", 10*time.Millisecond)
	m.ObserveOperation("GetMembers", "server", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.opErrors.WithLabelValues("GetMembers", "server")))
}

func TestObserveRequestAndHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("GET /members", 200, time.Millisecond)
	m.ObserveRequest("", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "404")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "gotera_http_requests_total")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("x", 200, time.Second)
	m.ObserveOperation("x", "transport", time.Second)
}
