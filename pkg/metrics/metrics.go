package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// БД
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBQueryDuration    *prometheus.HistogramVec
	DBTxTotal          *prometheus.CounterVec

	// Аллокатор
	AllocationsTotal       *prometheus.CounterVec
	AllocationRejections   *prometheus.CounterVec
	CapacityConflictsTotal *prometheus.CounterVec
}

// New регистрирует метрики в стандартном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections to the database",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBTxTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Database transactions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		AllocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "allocations_total",
			Help:        "Sub-booking mutations committed, by operation",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		AllocationRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "allocation_rejections_total",
			Help:        "Sub-booking mutations rejected, by operation and reason",
			ConstLabels: constLabels,
		}, []string{"operation", "reason"}),

		CapacityConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "capacity_conflicts_total",
			Help:        "Atomic capacity updates rejected because another allocation landed first",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}
}

// Allocated увеличивает счетчик успешных мутаций (безопасно для nil)
func (m *Metrics) Allocated(operation string) {
	if m == nil {
		return
	}
	m.AllocationsTotal.WithLabelValues(operation).Inc()
}

// Rejected увеличивает счетчик отклоненных мутаций (безопасно для nil)
func (m *Metrics) Rejected(operation, reason string) {
	if m == nil {
		return
	}
	m.AllocationRejections.WithLabelValues(operation, reason).Inc()
}

// Conflict увеличивает счетчик конфликтов емкости (безопасно для nil)
func (m *Metrics) Conflict(operation string) {
	if m == nil {
		return
	}
	m.CapacityConflictsTotal.WithLabelValues(operation).Inc()
}
