package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

var _ inventory.MetricsRecorder = (*Metrics)(nil)

// Metrics agrupa los collectors de la API en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	movementsApplied  *prometheus.CounterVec
	movementsRejected *prometheus.CounterVec
	applyDuration     *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New registra los collectors de la app más los de proceso y runtime de Go.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		movementsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_applied_total",
			Help:      "Movimientos confirmados por tipo.",
		}, []string{"type"}),
		movementsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_rejected_total",
			Help:      "Movimientos rechazados por tipo y motivo.",
		}, []string{"type", "reason"}),
		applyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "movement_apply_duration_seconds",
			Help:      "Duración de la transacción de un movimiento.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.movementsApplied,
		m.movementsRejected,
		m.applyDuration,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// MovementApplied cuenta un movimiento confirmado.
func (m *Metrics) MovementApplied(t entity.MovementType, elapsed time.Duration) {
	m.movementsApplied.WithLabelValues(string(t)).Inc()
	m.applyDuration.WithLabelValues(string(t)).Observe(elapsed.Seconds())
}

// MovementRejected cuenta un rechazo con su motivo (insufficient_stock, not_found...).
func (m *Metrics) MovementRejected(t entity.MovementType, reason string) {
	m.movementsRejected.WithLabelValues(string(t), reason).Inc()
}

// ObserveHTTP registra una petición ya respondida. route es el patrón, no la URL concreta.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
