package providers

import (
	"time"

	"gentil/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObservePersistenceDuration(duration time.Duration)
	IncStreakTransition(transition string)
	IncReschedule(result string)
	IncNotifications(result string)
	SetArmedTriggers(count int)
	SetDraftsTotal(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	streakTransitions   *prometheus.CounterVec
	reschedules         *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	armedTriggers       prometheus.Gauge
	draftsTotal         prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStreakTransition(transition string) {
	m.streakTransitions.WithLabelValues(transition).Inc()
}

func (m *MetricsProvider) IncReschedule(result string) {
	m.reschedules.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncNotifications(result string) {
	m.notifications.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) SetArmedTriggers(count int) {
	m.armedTriggers.Set(float64(count))
}

func (m *MetricsProvider) SetDraftsTotal(count int) {
	m.draftsTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gentil_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gentil_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gentil_cache_hits_total",
			Help: "Cache hits by key namespace",
		}, []string{"namespace"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gentil_cache_misses_total",
			Help: "Cache misses by key namespace",
		}, []string{"namespace"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gentil_persistence_duration_seconds",
			Help:    "Duration of draft snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		streakTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gentil_streak_transitions_total",
			Help: "Recorded activities by streak transition",
		}, []string{"transition"}),

		reschedules: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gentil_reminder_reschedules_total",
			Help: "Reminder reschedules by result",
		}, []string{"result"}),

		notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gentil_notifications_total",
			Help: "Fired reminders by delivery result",
		}, []string{"result"}),

		armedTriggers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gentil_armed_triggers",
			Help: "Daily reminder triggers currently armed",
		}),

		draftsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gentil_drafts_total",
			Help: "Users with onboarding drafts held in memory",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncStreakTransition(_ string)                     {}
func (n *noopMetrics) IncReschedule(_ string)                           {}
func (n *noopMetrics) IncNotifications(_ string)                        {}
func (n *noopMetrics) SetArmedTriggers(_ int)                           {}
func (n *noopMetrics) SetDraftsTotal(_ int)                             {}
