// Package metrics exposes action and callback counters over Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names
const (
	MetricNameActionsTotal         = "turncore_actions_total"
	MetricNameActionFailuresTotal  = "turncore_action_failures_total"
	MetricNameScriptCallbacksTotal = "turncore_script_callbacks_total"
)

// Label names
const (
	LabelCommand = "command"
	LabelOutcome = "outcome"
	LabelCode    = "code"
	LabelResult  = "result"
)

// Recorder counts action attempts, failures and script callbacks on its
// own registry.
type Recorder struct {
	registry  *prometheus.Registry
	actions   *prometheus.CounterVec
	failures  *prometheus.CounterVec
	callbacks *prometheus.CounterVec
}

// New creates a Recorder with a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameActionsTotal,
			Help: "Action attempts by command and outcome",
		}, []string{LabelCommand, LabelOutcome}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameActionFailuresTotal,
			Help: "Failed action attempts by error code",
		}, []string{LabelCode}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameScriptCallbacksTotal,
			Help: "Scripted item callbacks by result",
		}, []string{LabelResult}),
	}
	r.registry.MustRegister(r.actions, r.failures, r.callbacks)
	return r
}

// RecordAction counts one resolved attempt.
func (r *Recorder) RecordAction(command, outcome string) {
	r.actions.WithLabelValues(command, outcome).Inc()
}

// RecordFailure counts one failed attempt.
func (r *Recorder) RecordFailure(code string) {
	r.failures.WithLabelValues(code).Inc()
}

// RecordCallback counts one script callback invocation.
func (r *Recorder) RecordCallback(result string) {
	r.callbacks.WithLabelValues(result).Inc()
}

// Registry returns the registry the counters live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// NewServer returns a server exposing Handler on /metrics.
func (r *Recorder) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
