package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/lineator/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lineator"

// Metrics collects lineation counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Lineations  *prometheus.CounterVec
	Duration    prometheus.Histogram
	States      *prometheus.CounterVec
	Transitions prometheus.Counter
	Warnings    prometheus.Counter
	Frontier    prometheus.Histogram
	Cache       *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Lineations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lineations_total",
			Help:      "Lineation attempts by outcome (ok or the error kind).",
		}, []string{"result"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lineation_duration_seconds",
			Help:      "Wall time spent flattening a machine.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		States: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "composite_states_total",
			Help:      "Composite states generated, split into determined and undetermined.",
		}, []string{"kind"}),
		Transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Head-location transitions emitted.",
		}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_warnings_total",
			Help:      "Lines skipped or overridden while parsing descriptions.",
		}),
		Frontier: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frontier_size",
			Help:      "Number of composite states per frontier.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 9),
		}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Result cache lookups by outcome.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.Lineations, m.Duration, m.States, m.Transitions,
		m.Warnings, m.Frontier, m.Cache,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnWarning: func(context.Context, domain.Warning) {
			m.Warnings.Inc()
		},
		OnFrontier: func(_ context.Context, e *domain.FrontierEvent) {
			m.Frontier.Observe(float64(len(e.States)))
		},
		OnState: func(_ context.Context, e *domain.StateEvent) {
			kind := "undetermined"
			if e.Determined {
				kind = "determined"
			}
			m.States.WithLabelValues(kind).Inc()
		},
		OnTransition: func(context.Context, *domain.TransitionEvent) {
			m.Transitions.Inc()
		},
	}
}

// ObserveLineation records one attempt that started at start.
func (m *Metrics) ObserveLineation(start time.Time, err error) {
	m.Duration.Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = domain.Kind(err)
	}
	m.Lineations.WithLabelValues(result).Inc()
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.Cache.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// WriteToTextfile dumps the registry for the node_exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
