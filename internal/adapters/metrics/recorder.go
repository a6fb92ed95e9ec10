// Package metrics records pipeline activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
)

// Namespace prefixes every metric name.
const Namespace = "yaac"

// Compile result labels.
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

var (
	_ ports.MetricsRecorder = (*PrometheusRecorder)(nil)
	_ ports.MetricsRecorder = NoopRecorder{}
)

// PrometheusRecorder implements ports.MetricsRecorder with Prometheus collectors.
type PrometheusRecorder struct {
	registry        *prom.Registry
	resolveTotal    *prom.CounterVec
	compileTotal    *prom.CounterVec
	compileDuration *prom.HistogramVec
}

// NewPrometheusRecorder registers the pipeline collectors on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &PrometheusRecorder{
		registry: reg,
		resolveTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "resolve_total",
			Help:      "Asset resolutions by outcome",
		}, []string{"outcome"}),
		compileTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "compile_total",
			Help:      "Compiles by dialect and result",
		}, []string{"dialect", "result"}),
		compileDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: Namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of individual compiles",
			Buckets:   prom.DefBuckets,
		}, []string{"dialect"}),
	}
	reg.MustRegister(r.resolveTotal, r.compileTotal, r.compileDuration)

	return r
}

// IncResolve counts one resolution.
func (r *PrometheusRecorder) IncResolve(outcome domain.Outcome) {
	r.resolveTotal.WithLabelValues(string(outcome)).Inc()
}

// ObserveCompile records the duration and result of one compile.
func (r *PrometheusRecorder) ObserveCompile(dialect string, d time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailed
	}
	r.compileTotal.WithLabelValues(dialect, result).Inc()
	r.compileDuration.WithLabelValues(dialect).Observe(d.Seconds())
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

// IncResolve does nothing.
func (NoopRecorder) IncResolve(domain.Outcome) {}

// ObserveCompile does nothing.
func (NoopRecorder) ObserveCompile(string, time.Duration, error) {}
