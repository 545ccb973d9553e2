// Package metrics holds the Prometheus instrumentation for the tide clock.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tideclock"

// Metrics holds the counters, gauges, and histograms for the fetch loop, the
// display sinks, and the status server.
type Metrics struct {
	reg *prometheus.Registry

	// FetchTotal counts NOAA fetches by outcome (success, error).
	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram

	ConsecutiveFailures prometheus.Gauge
	SafeMode            prometheus.Gauge

	// FrameUpdates counts frames pushed to each display sink.
	FrameUpdates *prometheus.CounterVec

	// NTPSyncTotal counts clock syncs by outcome (success, error).
	NTPSyncTotal *prometheus.CounterVec

	RequestLatency *prometheus.HistogramVec
}

func build() *Metrics {
	return &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Tide prediction fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of NOAA prediction fetches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ConsecutiveFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consecutive_failures",
			Help:      "Current run of consecutive fetch failures.",
		}),
		SafeMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "safe_mode",
			Help:      "1 while the clock is in safe mode after repeated failures.",
		}),
		FrameUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_updates_total",
			Help:      "Frames rendered to each display sink.",
		}, []string{"sink"}),
		NTPSyncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ntp_sync_total",
			Help:      "NTP clock syncs by outcome.",
		}, []string{"outcome"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_latency",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0},
		}, []string{"verb", "path", "code"}),
	}
}

// New creates Metrics registered on their own registry.
func New() *Metrics {
	m := build()
	m.reg = prometheus.NewRegistry()
	m.reg.MustRegister(
		m.FetchTotal,
		m.FetchDuration,
		m.ConsecutiveFailures,
		m.SafeMode,
		m.FrameUpdates,
		m.NTPSyncTotal,
		m.RequestLatency,
	)
	return m
}

// NewForTesting creates unregistered Metrics so parallel tests don't fight
// over a registry.
func NewForTesting() *Metrics {
	return build()
}

// Handler serves the registry for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// statusRecorder captures the response code for the latency metric.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// LatencyHandler instruments next with the request latency histogram. Panics
// in next are reported as 500 errors and re-thrown.
func (m *Metrics) LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		observe := func(code int) {
			m.RequestLatency.With(prometheus.Labels{
				"verb": verb,
				"path": path,
				"code": strconv.Itoa(code),
			}).Observe(time.Since(t).Seconds())
		}

		defer func() {
			if err := recover(); err != nil {
				observe(http.StatusInternalServerError)
				panic(err)
			}
			observe(rec.code)
		}()

		next.ServeHTTP(rec, r)
	})
}
