package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the portal collectors. A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LoginAttemptsTotal  *prometheus.CounterVec
	PaymentsTotal       *prometheus.CounterVec
	AuditEventsTotal    *prometheus.CounterVec
	NotifyFailuresTotal *prometheus.CounterVec
	SettlementEvents    *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		PaymentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_payments_total",
				Help: "Payment records by resulting status",
			},
			[]string{"status"},
		),
		AuditEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_audit_events_total",
				Help: "Audit events by result",
			},
			[]string{"result"},
		),
		NotifyFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_notify_failures_total",
				Help: "Failed notification deliveries by sink",
			},
			[]string{"sink"},
		),
		SettlementEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_settlement_events_total",
				Help: "Payment-network events by kind",
			},
			[]string{"kind"},
		),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.HTTPRequestsTotal,
		r.HTTPRequestDuration,
		r.LoginAttemptsTotal,
		r.PaymentsTotal,
		r.AuditEventsTotal,
		r.NotifyFailuresTotal,
		r.SettlementEvents,
	)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func (r *Registry) Login(outcome string) {
	if r == nil {
		return
	}
	r.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (r *Registry) Payment(status string) {
	if r == nil {
		return
	}
	r.PaymentsTotal.WithLabelValues(status).Inc()
}

func (r *Registry) Audit(result string) {
	if r == nil {
		return
	}
	r.AuditEventsTotal.WithLabelValues(result).Inc()
}

func (r *Registry) NotifyFailure(sink string) {
	if r == nil {
		return
	}
	r.NotifyFailuresTotal.WithLabelValues(sink).Inc()
}

func (r *Registry) Settlement(kind string) {
	if r == nil {
		return
	}
	r.SettlementEvents.WithLabelValues(kind).Inc()
}

// Middleware records request counts and latency keyed by the chi route pattern.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.HTTPRequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.HTTPRequestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
