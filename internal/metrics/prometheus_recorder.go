package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	toolCalls     *prom.CounterVec
	elapsed       prom.Histogram
	storeErrors   *prom.CounterVec
	runningTimers prom.Gauge
}

// elapsedBuckets spans one second to eight hours; timed tasks are human-scale.
var elapsedBuckets = []float64{1, 10, 60, 300, 900, 1800, 3600, 7200, 14400, 28800}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.toolCalls = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tasktimer",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome",
		}, []string{"tool", "outcome"})
		pr.elapsed = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "tasktimer",
			Name:      "elapsed_seconds",
			Help:      "Elapsed time reported by stopped timers",
			Buckets:   elapsedBuckets,
		})
		pr.storeErrors = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tasktimer",
			Name:      "store_errors_total",
			Help:      "Swallowed timer store failures by operation",
		}, []string{"op"})
		pr.runningTimers = prom.NewGauge(prom.GaugeOpts{
			Namespace: "tasktimer",
			Name:      "running_timers",
			Help:      "Timers running after the last completed operation",
		})
		reg.MustRegister(pr.toolCalls, pr.elapsed, pr.storeErrors, pr.runningTimers)
	})
	return pr
}

func (p *PrometheusRecorder) IncToolCall(tool string, outcome ToolOutcome) {
	if p == nil || p.toolCalls == nil {
		return
	}
	p.toolCalls.WithLabelValues(tool, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveElapsed(d time.Duration) {
	if p == nil || p.elapsed == nil {
		return
	}
	p.elapsed.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStoreError(op string) {
	if p == nil || p.storeErrors == nil {
		return
	}
	p.storeErrors.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) SetRunningTimers(n int) {
	if p == nil || p.runningTimers == nil {
		return
	}
	p.runningTimers.Set(float64(n))
}
