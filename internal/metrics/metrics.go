// Package metrics exposes Prometheus instrumentation for the order service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the service collectors.
type Metrics struct {
	Transitions         *prometheus.CounterVec
	AttachmentsUploaded prometheus.Counter
	UsersCreated        prometheus.Counter
	RequestDuration     *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "printshop_transitions_total",
			Help: "Order lifecycle transitions by kind and outcome",
		}, []string{"kind", "outcome"}),
		AttachmentsUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "printshop_attachments_uploaded_total",
			Help: "Attachments stored in object storage",
		}),
		UsersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "printshop_users_created_total",
			Help: "Users created through the privileged endpoint",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "printshop_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
		gatherer: reg,
	}

	reg.MustRegister(m.Transitions, m.AttachmentsUploaded, m.UsersCreated, m.RequestDuration)
	return m
}

// ObserveTransition counts one lifecycle transition attempt.
func (m *Metrics) ObserveTransition(kind, outcome string) {
	m.Transitions.WithLabelValues(kind, outcome).Inc()
}

// UserCreated counts a user provisioned by an administrator.
func (m *Metrics) UserCreated() {
	m.UsersCreated.Inc()
}

// AttachmentUploaded counts a stored attachment.
func (m *Metrics) AttachmentUploaded() {
	m.AttachmentsUploaded.Inc()
}

// ObserveRequest records the latency of a served request.
func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
