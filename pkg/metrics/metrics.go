package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы фиксации бронирования
const (
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Metrics набор prometheus метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках
// компоненты получают nil и вызовы становятся no-op.
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	bookingCommits      *prometheus.CounterVec
	availabilityLookups *prometheus.CounterVec
	statusTransitions   *prometheus.CounterVec
	cascadeCancels      prometheus.Counter
	dbQueryDuration     *prometheus.HistogramVec
	dbOpenConns         prometheus.Gauge
	dbInUseConns        prometheus.Gauge
	dbIdleConns         prometheus.Gauge
	dbWaitCount         prometheus.Gauge
}

// New регистрирует метрики в reg с константной меткой service
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg))

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP запросов",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность обработки HTTP запросов",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_commits_total",
			Help: "Попытки фиксации бронирования по исходу",
		}, []string{"outcome"}),
		availabilityLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_lookups_total",
			Help: "Запросы свободных слотов",
		}, []string{"result"}),
		statusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_status_transitions_total",
			Help: "Переходы статусов бронирований",
		}, []string{"from", "to"}),
		cascadeCancels: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_cascade_cancellations_total",
			Help: "Бронирования, отмененные при удалении мастера",
		}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Длительность SQL запросов",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Открытые соединения пула",
		}),
		dbInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Занятые соединения пула",
		}),
		dbIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Свободные соединения пула",
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Суммарное количество ожиданий соединения",
		}),
	}
}

// ObserveHTTP фиксирует HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncBookingCommit фиксирует исход попытки бронирования
func (m *Metrics) IncBookingCommit(outcome string) {
	if m == nil {
		return
	}
	m.bookingCommits.WithLabelValues(outcome).Inc()
}

// IncAvailabilityLookup фиксирует запрос свободных слотов; result - "ok", "empty" или "error"
func (m *Metrics) IncAvailabilityLookup(result string) {
	if m == nil {
		return
	}
	m.availabilityLookups.WithLabelValues(result).Inc()
}

// IncStatusTransition фиксирует смену статуса бронирования
func (m *Metrics) IncStatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// AddCascadeCancellations фиксирует каскадные отмены
func (m *Metrics) AddCascadeCancellations(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.cascadeCancels.Add(float64(n))
}

// ObserveDBQuery фиксирует длительность SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetDBPoolStats выставляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}
