// Package metrics exposes Prometheus metrics for the directory pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"userexplorer/internal/domain"
	"userexplorer/internal/eventbus"
)

// Manager owns the pipeline metrics and the registry they live in
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry
	logger           *zap.Logger

	fetchAttempts        prometheus.Counter
	fetchResults         *prometheus.CounterVec
	fetchDuration        prometheus.Histogram
	recordsLoaded        prometheus.Gauge
	debounceFires        prometheus.Counter
	filterRecomputations prometheus.Counter
	filterDuration       prometheus.Histogram
	resultCount          prometheus.Gauge
}

// Option configures a Manager
type Option func(*Manager)

// WithNamespace sets the metric name prefix
func WithNamespace(namespace string) Option {
	return func(m *Manager) { m.namespace = namespace }
}

// WithRegistry registers the metrics on registry instead of a fresh one
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithHistogramBuckets sets the latency buckets, in seconds
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates the metrics on their own registry
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "userexplorer",
		histogramBuckets: prometheus.DefBuckets,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.logger = m.logger.Named("metrics")
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchAttempts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "fetch",
		Name:      "attempts_total",
		Help:      "Directory load attempts started",
	})
	m.fetchResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "fetch",
		Name:      "results_total",
		Help:      "Directory load attempts by outcome",
	}, []string{"outcome"})
	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "fetch",
		Name:      "duration_seconds",
		Help:      "Time from request to a success or failure",
		Buckets:   m.histogramBuckets,
	})
	m.recordsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "records_loaded",
		Help:      "Records in the last successfully fetched directory",
	})
	m.debounceFires = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "debounce",
		Name:      "fires_total",
		Help:      "Debounced query values that took effect",
	})
	m.filterRecomputations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "filter",
		Name:      "recomputations_total",
		Help:      "Times the filtered result was recomputed",
	})
	m.filterDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "filter",
		Name:      "duration_seconds",
		Help:      "Time spent recomputing the filtered result",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
	m.resultCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "filter",
		Name:      "result_count",
		Help:      "Records matching the current query",
	})
}

// Registry returns the registry holding the metrics
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Subscribe records pipeline events from bus. The returned function
// removes all subscriptions.
func (m *Manager) Subscribe(bus eventbus.EventBus) func() {
	unsubscribers := []func(){
		bus.Subscribe(eventbus.EventFetchStarted, m.handleEvent),
		bus.Subscribe(eventbus.EventFetchSucceeded, m.handleEvent),
		bus.Subscribe(eventbus.EventFetchFailed, m.handleEvent),
		bus.Subscribe(eventbus.EventFetchCanceled, m.handleEvent),
		bus.Subscribe(eventbus.EventQueryApplied, m.handleEvent),
		bus.Subscribe(eventbus.EventFilterComputed, m.handleEvent),
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func (m *Manager) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case domain.FetchStartedEvent:
		m.fetchAttempts.Inc()
	case domain.FetchSucceededEvent:
		m.fetchResults.WithLabelValues("success").Inc()
		m.fetchDuration.Observe(e.Duration.Seconds())
		m.recordsLoaded.Set(float64(e.Count))
	case domain.FetchFailedEvent:
		m.fetchResults.WithLabelValues(e.Kind).Inc()
		m.fetchDuration.Observe(e.Duration.Seconds())
	case domain.FetchCanceledEvent:
		m.fetchResults.WithLabelValues("canceled").Inc()
	case domain.QueryAppliedEvent:
		m.debounceFires.Inc()
	case domain.FilterComputedEvent:
		m.filterRecomputations.Inc()
		m.filterDuration.Observe(e.Duration.Seconds())
		m.resultCount.Set(float64(e.ResultCount))
	default:
		m.logger.Debug("ignoring event", zap.String("type", string(event.Type())))
	}
}
