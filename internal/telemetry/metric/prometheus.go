package metric

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "sharepay"

// Dispatch outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeAuthExpired    = "auth_expired"
	OutcomeServerError    = "server_error"
)

// Registry holds all client metrics.
type Registry struct {
	registry *prometheus.Registry

	DispatchTotal   *prometheus.CounterVec
	RefreshTotal    *prometheus.CounterVec
	RedirectsTotal  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates the client metrics on a fresh registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		DispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "dispatch_total",
			Help:      "Authenticated dispatches by final outcome.",
		}, []string{"outcome"}),
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "refresh_total",
			Help:      "Token refresh attempts by result.",
		}, []string{"result"}),
		RedirectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "redirects_total",
			Help:      "Navigations triggered by the client, by target path.",
		}, []string{"path"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of individual HTTP sends.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}

	r.registry.MustRegister(r.DispatchTotal, r.RefreshTotal, r.RedirectsTotal, r.RequestDuration)
	return r
}

// Register adds an extra collector, such as a CredentialCollector.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Registerer lets other packages add their own collectors.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveDispatch counts one finished dispatch.
func (r *Registry) ObserveDispatch(outcome string) {
	r.DispatchTotal.WithLabelValues(outcome).Inc()
}

// ObserveRefresh counts one refresh attempt.
func (r *Registry) ObserveRefresh(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	r.RefreshTotal.WithLabelValues(result).Inc()
}

// ObserveRedirect counts one navigation.
func (r *Registry) ObserveRedirect(path string) {
	r.RedirectsTotal.WithLabelValues(path).Inc()
}

// ObserveRequest records one HTTP send. status 0 means no response.
func (r *Registry) ObserveRequest(method string, status int, d time.Duration) {
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	r.RequestDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

// WriteText writes every metric family in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
