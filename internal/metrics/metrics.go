package metrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "amorlias"

// Metrics groups the Prometheus collectors exported by the API.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	LabelsRendered *prometheus.CounterVec
	UnknownCourier prometheus.Counter
	Sales          *prometheus.CounterVec
	Emails         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers all collectors on reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		LabelsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "labels_rendered_total",
			Help:      "Shipping labels produced, by output format.",
		}, []string{"format"}),
		UnknownCourier: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_courier_total",
			Help:      "Labels rendered with the default courier profile because the courier name was not recognised.",
		}),
		Sales: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pos_sales_total",
			Help:      "Counter sales recorded, by payment method.",
		}, []string{"method"}),
		Emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_emails_total",
			Help:      "Notification emails attempted, by result.",
		}, []string{"result"}),
		gatherer: reg,
	}
	mustRegister(reg, m.HTTPRequests, m.HTTPDuration, m.LabelsRendered, m.UnknownCourier, m.Sales, m.Emails)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) LabelRendered(format string) {
	m.LabelsRendered.WithLabelValues(format).Inc()
}

func (m *Metrics) UnknownCourierSeen() {
	m.UnknownCourier.Inc()
}

func (m *Metrics) SaleRecorded(method string) {
	m.Sales.WithLabelValues(method).Inc()
}

func (m *Metrics) EmailDelivered(ok bool) {
	result := "sent"
	if !ok {
		result = "failed"
	}
	m.Emails.WithLabelValues(result).Inc()
}

func mustRegister(reg prometheus.Registerer, cs ...prometheus.Collector) {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(fmt.Errorf("register collector: %w", err))
		}
	}
}

// Noop discards all measurements.
type Noop struct{}

func (Noop) LabelRendered(string) {}
func (Noop) UnknownCourierSeen()  {}
func (Noop) SaleRecorded(string)  {}
func (Noop) EmailDelivered(bool)  {}
