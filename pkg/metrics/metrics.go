// Package metrics exports enumeration, cache and API activity to Prometheus.
//
// A [Metrics] value implements the hook interfaces of pkg/observability and
// can hand out a [setcover.Recorder] for live enumeration counters. All
// collectors are registered on the registry passed to [New], so tests and
// embedders can use an isolated registry.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetServerHooks(m)
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cohensara/coverenum/pkg/observability"
	"github.com/cohensara/coverenum/pkg/setcover"
)

const namespace = "coverenum"

// =============================================================================
// Collectors
// =============================================================================

// Metrics holds every collector.
type Metrics struct {
	// LoadsTotal counts instance loads. Labels: status (success, error)
	LoadsTotal *prometheus.CounterVec

	// LoadDuration measures instance parsing time in seconds.
	LoadDuration prometheus.Histogram

	// RunsTotal counts enumeration runs. Labels: status (success, error)
	RunsTotal *prometheus.CounterVec

	// RunDuration measures enumeration time in seconds.
	RunDuration prometheus.Histogram

	// CoversTotal counts emitted covers.
	CoversTotal prometheus.Counter

	// InstanceSets observes the set count of enumerated instances.
	InstanceSets prometheus.Histogram

	// GreedyCallsTotal counts greedy solver invocations.
	GreedyCallsTotal prometheus.Counter

	// BestWeight is the best weight of the most recent run.
	BestWeight prometheus.Gauge

	// CacheOpsTotal counts cache operations. Labels: kind (result, optimum), op (hit, miss, set)
	CacheOpsTotal *prometheus.CounterVec

	// CacheBytesTotal counts bytes written to the cache. Labels: kind
	CacheBytesTotal *prometheus.CounterVec

	// RequestsInFlight tracks API requests being served. Labels: route
	RequestsInFlight *prometheus.GaugeVec

	// RequestDuration measures API latency in seconds. Labels: method, route, status
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. It panics if reg
// already holds collectors with the same names.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "instance",
			Name:      "loads_total",
			Help:      "Instance loads by status",
		}, []string{"status"}),

		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "instance",
			Name:      "load_duration_seconds",
			Help:      "Instance parse time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),

		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enumerate",
			Name:      "runs_total",
			Help:      "Enumeration runs by status",
		}, []string{"status"}),

		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "enumerate",
			Name:      "duration_seconds",
			Help:      "Enumeration time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),

		CoversTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enumerate",
			Name:      "covers_total",
			Help:      "Covers emitted",
		}),

		InstanceSets: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "enumerate",
			Name:      "instance_sets",
			Help:      "Number of sets in enumerated instances",
			Buckets:   prometheus.ExponentialBuckets(4, 4, 8),
		}),

		GreedyCallsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enumerate",
			Name:      "greedy_calls_total",
			Help:      "Greedy solver invocations",
		}),

		BestWeight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "enumerate",
			Name:      "best_weight",
			Help:      "Lowest weight emitted by the most recent run",
		}),

		CacheOpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache operations by kind and outcome",
		}, []string{"kind", "op"}),

		CacheBytesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}, []string{"kind"}),

		RequestsInFlight: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "API requests being served",
		}, []string{"route"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// =============================================================================
// Hook Implementations
// =============================================================================

func (m *Metrics) OnLoadStart(context.Context, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, _, _ int, d time.Duration, err error) {
	m.LoadsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		m.LoadDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) OnEnumerateStart(_ context.Context, numSets, _, _ int) {
	m.InstanceSets.Observe(float64(numSets))
}

func (m *Metrics) OnEnumerateComplete(_ context.Context, covers int, d time.Duration, err error) {
	m.RunsTotal.WithLabelValues(status(err)).Inc()
	m.RunDuration.Observe(d.Seconds())
	m.CoversTotal.Add(float64(covers))
}

func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.CacheOpsTotal.WithLabelValues(kind, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.CacheOpsTotal.WithLabelValues(kind, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.CacheOpsTotal.WithLabelValues(kind, "set").Inc()
	m.CacheBytesTotal.WithLabelValues(kind).Add(float64(size))
}

func (m *Metrics) OnRequest(_ context.Context, _, route string) {
	m.RequestsInFlight.WithLabelValues(route).Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.RequestsInFlight.WithLabelValues(route).Dec()
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
}

// Register installs m as the pipeline, cache and server hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetServerHooks(m)
}

// =============================================================================
// Enumeration Recorder
// =============================================================================

// Recorder returns a setcover.Recorder feeding the greedy-call counter and
// the best-weight gauge.
func (m *Metrics) Recorder() setcover.Recorder {
	return recorder{m}
}

type recorder struct{ m *Metrics }

func (r recorder) FirstWeight(int)             {}
func (r recorder) BestWeight(w, _ int)         { r.m.BestWeight.Set(float64(w)) }
func (r recorder) Interval(time.Duration, int) {}
func (r recorder) GreedyCall()                 { r.m.GreedyCallsTotal.Inc() }

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.ServerHooks   = (*Metrics)(nil)
)
