package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records history, render and cache events as Prometheus
// metrics. One value implements [HistoryHooks], [RenderHooks] and
// [CacheHooks], so it can be registered for all three.
type PrometheusHooks struct {
	commands *prometheus.CounterVec
	renders  *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// It panics if registration fails, as prometheus.MustRegister does.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foldout_commands_total",
				Help: "Total number of outline commands run, undone or redone",
			},
			[]string{"op", "command", "result"},
		),
		renders: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foldout_render_duration_seconds",
				Help:    "Duration of diagram renders",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foldout_cache_events_total",
				Help: "Total number of cache hits, misses and writes",
			},
			[]string{"event", "key_type"},
		),
	}
	reg.MustRegister(h.commands, h.renders, h.cache)
	return h
}

func (h *PrometheusHooks) OnRun(command string, err error)  { h.count("run", command, err) }
func (h *PrometheusHooks) OnUndo(command string, err error) { h.count("undo", command, err) }
func (h *PrometheusHooks) OnRedo(command string, err error) { h.count("redo", command, err) }

func (h *PrometheusHooks) count(op, command string, err error) {
	h.commands.WithLabelValues(op, command, result(err)).Inc()
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.renders.WithLabelValues(format, result(err)).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cache.WithLabelValues("hit", keyType).Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cache.WithLabelValues("miss", keyType).Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cache.WithLabelValues("set", keyType).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
