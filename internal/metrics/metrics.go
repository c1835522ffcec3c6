package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the auth counters. Each instance owns its registry so tests
// can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	AuthAttempts  *prometheus.CounterVec
	GateDecisions *prometheus.CounterVec
	OTPsIssued    prometheus.Counter
	OTPFailures   *prometheus.CounterVec
	RequestTime   *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phono_auth_attempts_total",
				Help: "Login, activation and refresh attempts by actor, operation and outcome",
			},
			[]string{"actor", "operation", "outcome"},
		),
		GateDecisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phono_gate_decisions_total",
				Help: "Session gate decisions",
			},
			[]string{"decision"},
		),
		OTPsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "phono_otps_issued_total",
			Help: "Activation codes issued",
		}),
		OTPFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phono_otp_failures_total",
				Help: "Rejected activation attempts by reason",
			},
			[]string{"reason"},
		),
		RequestTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "phono_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Outcome reduces an error to a low-cardinality label value
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	return "failure"
}
