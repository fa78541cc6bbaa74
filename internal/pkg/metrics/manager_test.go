package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	m := NewTestManager()

	m.CounterAICalls.WithLabelValues("gemini", "ok").Inc()
	m.CounterAICalls.WithLabelValues("gemini", "ok").Inc()
	m.CounterAICalls.WithLabelValues("gemini", "error").Inc()
	m.CounterCache.WithLabelValues("hit").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterAICalls.WithLabelValues("gemini", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterAICalls.WithLabelValues("gemini", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterCache.WithLabelValues("hit")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CounterPanics))
}

func TestManager_Handler(t *testing.T) {
	m := NewTestManager()
	m.CounterPanics.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "fitforge_test_server_handle_request_panic 1")
}
