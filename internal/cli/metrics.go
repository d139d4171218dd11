package cli

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jimtonn/foldout/pkg/observability"
)

// metricsRecorder collects Prometheus metrics for one command run and
// writes them in the text format for a node_exporter textfile collector.
// A recorder with an empty path does nothing.
type metricsRecorder struct {
	path  string
	reg   *prometheus.Registry
	hooks *observability.PrometheusHooks
}

func newMetricsRecorder(path string) *metricsRecorder {
	m := &metricsRecorder{path: path}
	if path != "" {
		m.reg = prometheus.NewRegistry()
		m.hooks = observability.NewPrometheusHooks(m.reg)
	}
	return m
}

// watchRenders registers the recorder for render and cache events.
func (m *metricsRecorder) watchRenders() {
	if m.hooks == nil {
		return
	}
	observability.SetRenderHooks(m.hooks)
	observability.SetCacheHooks(m.hooks)
}

// historyHooks returns base, plus the recorder when metrics are enabled.
func (m *metricsRecorder) historyHooks(base observability.HistoryHooks) observability.HistoryHooks {
	if m.hooks == nil {
		return base
	}
	return observability.MultiHistoryHooks{base, m.hooks}
}

// write stores the collected metrics. Failures are logged, not returned.
func (m *metricsRecorder) write(c *CLI) {
	if m.reg == nil {
		return
	}
	if err := prometheus.WriteToTextfile(m.path, m.reg); err != nil {
		c.Logger.Warn("could not write metrics", "path", m.path, "error", err)
		return
	}
	c.Logger.Debug("wrote metrics", "path", m.path)
}
