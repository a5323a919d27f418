// Package metrics expone contadores Prometheus del API y del sincronizador de vínculos.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foodzo"

// Metrics agrupa los collectors registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	syncPrimaryWrites   *prometheus.CounterVec
	syncRelatedWrites   *prometheus.CounterVec
	syncRelatedFailures *prometheus.CounterVec
}

// New crea y registra los collectors (incluye métricas de proceso y del runtime de Go).
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Número total de requests procesadas",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de los requests HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		syncPrimaryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_sync_primary_writes_total",
			Help:      "Escrituras de la lista de ids en el registro principal",
		}, []string{"collection"}),
		syncRelatedWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_sync_related_writes_total",
			Help:      "Escrituras en registros relacionados por operación (add|remove)",
		}, []string{"collection", "op"}),
		syncRelatedFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_sync_related_failures_total",
			Help:      "Fallos al actualizar registros relacionados",
		}, []string{"collection", "op"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.syncPrimaryWrites, m.syncRelatedWrites, m.syncRelatedFailures,
	)
	return m
}

// Registry expone el registry (tests y collectors adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler net/http para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// PrimaryWrite cuenta una escritura del registro principal.
func (m *Metrics) PrimaryWrite(collection string) {
	m.syncPrimaryWrites.WithLabelValues(collection).Inc()
}

// RelatedWrite cuenta una escritura en un registro relacionado.
func (m *Metrics) RelatedWrite(collection, op string) {
	m.syncRelatedWrites.WithLabelValues(collection, op).Inc()
}

// RelatedFailure cuenta un fallo en un registro relacionado.
func (m *Metrics) RelatedFailure(collection, op string) {
	m.syncRelatedFailures.WithLabelValues(collection, op).Inc()
}

// Middleware mide cada request usando la ruta registrada (no la URL) como etiqueta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		method := c.Method()
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
