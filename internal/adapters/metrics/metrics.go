package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector - метрики клиента со своим реестром Prometheus.
// Методы безопасно вызывать у nil-коллектора.
type Collector struct {
	registry *prometheus.Registry

	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	UIActions       *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the property API",
		}, []string{"operation", "status"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of property API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served by the web view",
		}, []string{"method", "route", "status_code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of web view requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UIActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ui_actions_total",
			Help:      "User actions handled by the controller",
		}, []string{"ui", "action", "result"}),
	}

	reg.MustRegister(c.BackendRequests, c.BackendDuration, c.HTTPRequests, c.HTTPDuration, c.UIActions)
	return c
}

// Handler отдает метрики в формате Prometheus
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordBackendRequest: status - HTTP-код ответа или "error", если ответа не было
func (c *Collector) RecordBackendRequest(operation, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.BackendRequests.WithLabelValues(operation, status).Inc()
	c.BackendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUIAction считает действие пользователя; err == nil - "ok"
func (c *Collector) RecordUIAction(ui, action string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.UIActions.WithLabelValues(ui, action, result).Inc()
}
