package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wifid"

// Registry holds every collector wifid exports. All methods are safe
// to call on a nil *Registry so callers never have to check.
type Registry struct {
	reg *prometheus.Registry

	ToolInvocations *prometheus.CounterVec
	ToolDuration    *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Registry{
		reg: reg,
		ToolInvocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nmcli_invocations_total",
			Help:      "nmcli processes spawned, by command and outcome.",
		}, []string{"command", "outcome"}),
		ToolDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "nmcli_duration_seconds",
			Help:      "Wall clock time of nmcli invocations.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
		}, []string{"command"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
	}
}

// ObserveTool records one finished nmcli run. outcome is one of
// "ok", "error" or "timeout".
func (r *Registry) ObserveTool(command, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.ToolInvocations.WithLabelValues(command, outcome).Inc()
	r.ToolDuration.WithLabelValues(command).Observe(took.Seconds())
}

func (r *Registry) ObserveHTTP(route string, code int) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
