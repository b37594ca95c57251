// Package metrics implements the observability hooks with Prometheus
// collectors.
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	m.Install()
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/bubbletreemap/pkg/observability"
)

const namespace = "bubbletreemap"

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// Metrics holds every collector. It implements all hook interfaces.
type Metrics struct {
	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	nodes         prometheus.Histogram
	segments      prometheus.Counter
	contourFails  prometheus.Counter

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	groupsSettled  *prometheus.CounterVec
	settleDuration prometheus.Histogram
	overlaps       *prometheus.CounterVec
	degenerate     *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		stageTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_total",
			Help:      "Pipeline stage executions by stage and result",
		}, []string{"stage", "result"}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration",
			Buckets:   durationBuckets,
		}, []string{"stage"}),
		nodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hierarchy_nodes",
			Help:      "Nodes per decoded hierarchy",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		segments: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contour_segments_total",
			Help:      "Contour segments traced",
		}),
		contourFails: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contour_failures_total",
			Help:      "Clusters whose contour could not be traced",
		}),

		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by key type",
		}, []string{"type"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by key type",
		}, []string{"type"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"type"}),

		groupsSettled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_settled_total",
			Help:      "Sibling groups simulated by depth",
		}, []string{"depth"}),
		settleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settle_duration_seconds",
			Help:      "Physics simulation duration per sibling group",
			Buckets:   durationBuckets,
		}),
		overlaps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlaps_total",
			Help:      "Leaf pairs left overlapping after simulation by depth",
		}, []string{"depth"}),
		degenerate: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degenerate_groups_total",
			Help:      "Zero-mass fallbacks by depth",
		}, []string{"depth"}),

		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   durationBuckets,
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests being served",
		}),
	}
}

// Install makes m the global hook implementation for every category.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetLayoutHooks(m)
	observability.SetServerHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// =============================================================================
// Pipeline
// =============================================================================

func (m *Metrics) OnDecodeStart(context.Context, string) {}

func (m *Metrics) OnDecodeComplete(_ context.Context, _ string, nodeCount int, d time.Duration, err error) {
	m.stageTotal.WithLabelValues("decode", result(err)).Inc()
	m.stageDuration.WithLabelValues("decode").Observe(d.Seconds())
	if err == nil {
		m.nodes.Observe(float64(nodeCount))
	}
}

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	m.stageTotal.WithLabelValues("layout", result(err)).Inc()
	m.stageDuration.WithLabelValues("layout").Observe(d.Seconds())
}

func (m *Metrics) OnContourComplete(_ context.Context, segments, failures int, d time.Duration) {
	m.stageTotal.WithLabelValues("contour", "ok").Inc()
	m.stageDuration.WithLabelValues("contour").Observe(d.Seconds())
	m.segments.Add(float64(segments))
	m.contourFails.Add(float64(failures))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.stageTotal.WithLabelValues("render", result(err)).Inc()
	m.stageDuration.WithLabelValues("render").Observe(d.Seconds())
}

// =============================================================================
// Cache
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// =============================================================================
// Layout
// =============================================================================

func (m *Metrics) OnGroupSettled(depth, _ int, d time.Duration) {
	m.groupsSettled.WithLabelValues(strconv.Itoa(depth)).Inc()
	m.settleDuration.Observe(d.Seconds())
}

func (m *Metrics) OnOverlap(depth, count int) {
	m.overlaps.WithLabelValues(strconv.Itoa(depth)).Add(float64(count))
}

func (m *Metrics) OnDegenerate(depth int) {
	m.degenerate.WithLabelValues(strconv.Itoa(depth)).Inc()
}

// =============================================================================
// Server
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.inFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(strings.ToUpper(method), route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(strings.ToUpper(method), route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.LayoutHooks   = (*Metrics)(nil)
	_ observability.ServerHooks   = (*Metrics)(nil)
)
