// Package metrics implements the observability hooks on top of Prometheus.
//
// A single [Hooks] value satisfies every hook interface in pkg/observability,
// so main registers it once per category:
//
//	m := metrics.New(metrics.WithRegistry(reg))
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	observability.SetHoverHooks(m)
package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/flowergraph/pkg/observability"
)

const defaultNamespace = "flowergraph"

// Hooks records pipeline, cache, HTTP and hover events as Prometheus metrics.
type Hooks struct {
	namespace string
	buckets   []float64
	registry  prometheus.Registerer

	layouts        *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	legendSize     prometheus.Gauge
	records        prometheus.Gauge

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	hoverChanges *prometheus.CounterVec
}

var (
	_ observability.PipelineHooks = (*Hooks)(nil)
	_ observability.CacheHooks    = (*Hooks)(nil)
	_ observability.HTTPHooks     = (*Hooks)(nil)
	_ observability.HoverHooks    = (*Hooks)(nil)
)

// New creates the metrics and registers them. Without [WithRegistry] the
// Prometheus default registerer is used, so New must then be called once per
// process.
func New(opts ...Option) *Hooks {
	h := &Hooks{
		namespace: defaultNamespace,
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.init()
	return h
}

func (h *Hooks) init() {
	auto := promauto.With(h.registry)

	h.layouts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: h.namespace,
		Subsystem: "pipeline",
		Name:      "layouts_total",
		Help:      "Layouts computed, by outcome",
	}, []string{"outcome"})
	h.layoutDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: h.namespace,
		Subsystem: "pipeline",
		Name:      "layout_duration_seconds",
		Help:      "Time spent deriving the legend and placing nodes",
		Buckets:   h.buckets,
	})
	h.legendSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: h.namespace,
		Subsystem: "pipeline",
		Name:      "legend_types",
		Help:      "Number of distinct types in the last computed legend",
	})
	h.records = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: h.namespace,
		Subsystem: "pipeline",
		Name:      "records",
		Help:      "Number of records in the last layout",
	})

	h.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: h.namespace,
		Subsystem: "pipeline",
		Name:      "renders_total",
		Help:      "Render runs, by visualization type and outcome",
	}, []string{"viz_type", "outcome"})
	h.renderDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: h.namespace,
		Subsystem: "pipeline",
		Name:      "render_duration_seconds",
		Help:      "Time spent writing output artifacts",
		Buckets:   h.buckets,
	}, []string{"viz_type"})

	h.cacheHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: h.namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Cache hits, by key type",
	}, []string{"key_type"})
	h.cacheMisses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: h.namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Cache misses, by key type",
	}, []string{"key_type"})
	h.cacheBytes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: h.namespace,
		Subsystem: "cache",
		Name:      "written_bytes_total",
		Help:      "Bytes written to the cache, by key type",
	}, []string{"key_type"})

	h.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: h.namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Requests currently being served",
	})
	h.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: h.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Served requests, by route, method and status code",
	}, []string{"route", "method", "status_code"})
	h.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: h.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Request latency, by route and method",
		Buckets:   h.buckets,
	}, []string{"route", "method"})

	h.hoverChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: h.namespace,
		Subsystem: "hover",
		Name:      "changes_total",
		Help:      "Hover track changes, by track and state",
	}, []string{"track", "state"})
}

func (h *Hooks) OnLayoutStart(_ context.Context, recordCount int) {
	h.records.Set(float64(recordCount))
}

func (h *Hooks) OnLayoutComplete(_ context.Context, typeCount int, d time.Duration, err error) {
	h.layouts.WithLabelValues(outcome(err)).Inc()
	h.layoutDuration.Observe(d.Seconds())
	if err == nil {
		h.legendSize.Set(float64(typeCount))
	}
}

func (h *Hooks) OnRenderStart(context.Context, string, []string) {}

func (h *Hooks) OnRenderComplete(_ context.Context, vizType string, _ []string, d time.Duration, err error) {
	h.renders.WithLabelValues(vizType, outcome(err)).Inc()
	h.renderDuration.WithLabelValues(vizType).Observe(d.Seconds())
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheHits.WithLabelValues(keyType).Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheMisses.WithLabelValues(keyType).Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *Hooks) OnRequest(context.Context, string, string) {
	h.httpInFlight.Inc()
}

func (h *Hooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpInFlight.Dec()
	h.httpRequests.WithLabelValues(route, strings.ToUpper(method), strconv.Itoa(status)).Inc()
	h.httpDuration.WithLabelValues(route, strings.ToUpper(method)).Observe(d.Seconds())
}

func (h *Hooks) OnHoverChange(track string, active bool) {
	state := "reset"
	if active {
		state = "set"
	}
	h.hoverChanges.WithLabelValues(track, state).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
