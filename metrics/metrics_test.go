package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/turncore/engine/action"
	"github.com/nathoo/turncore/engine/script"
)

var (
	_ action.Recorder = (*Recorder)(nil)
	_ script.Recorder = (*Recorder)(nil)
)

func TestRecorder_Counts(t *testing.T) {
	r := New()

	r.RecordAction("move", "turn_ends")
	r.RecordAction("move", "turn_ends")
	r.RecordAction("use", "turn_continues_with_error")
	r.RecordFailure("BLOCKED")
	r.RecordCallback("success")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.actions.WithLabelValues("move", "turn_ends")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.actions.WithLabelValues("use", "turn_continues_with_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("BLOCKED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.callbacks.WithLabelValues("success")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.actions))
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordFailure("BLOCKED")

	assert.Equal(t, 0, testutil.CollectAndCount(b.failures))
}

func TestHandler_ServesMetrics(t *testing.T) {
	r := New()
	r.RecordAction("rest", "turn_ends")

	srv := httptest.NewServer(r.NewServer("").Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `turncore_actions_total{command="rest",outcome="turn_ends"} 1`))
}
