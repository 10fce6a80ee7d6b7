package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.FlowStarted("manual")
		m.FlowCommitted("manual")
		m.FlowAborted("manual", "cancel")
		m.ExportServed("command")
		m.RecordsCleared()
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("butler", nil)

	m.FlowStarted("forwarded")
	m.FlowStarted("forwarded")
	m.FlowCommitted("forwarded")
	m.FlowAborted("manual", "idle")
	m.ExportServed("commit")
	m.RecordsCleared()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FlowsStarted.WithLabelValues("forwarded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FlowsCommitted.WithLabelValues("forwarded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FlowsAborted.WithLabelValues("manual", "idle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("commit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Clears))
}

func TestServer_Endpoints(t *testing.T) {
	active := func() int { return 3 }
	m := NewMetrics("butler", active)
	m.FlowStarted("manual")
	s := NewServer("127.0.0.1:0", m, active)
	h := s.router(m)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 3.0, body["active_sessions"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `butler_flows_started_total{flow="manual"} 1`)
	assert.Contains(t, rec.Body.String(), "butler_active_sessions 3")
}
