package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skyscout"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	Lookups          *prometheus.CounterVec
	LookupDuration   *prometheus.HistogramVec
	LookupsDiscarded *prometheus.CounterVec
	Submissions      *prometheus.CounterVec
	SubmitDuration   *prometheus.HistogramVec
	InFlight         prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "place_lookups_total",
				Help:      "Total number of applied place lookups",
			},
			[]string{"field", "outcome"},
		),
		LookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "place_lookup_duration_seconds",
				Help:      "Duration of place lookups",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"field"},
		),
		LookupsDiscarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "place_lookups_discarded_total",
				Help:      "Place lookups whose result arrived after a newer query",
			},
			[]string{"field"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_submissions_total",
				Help:      "Total number of completed itinerary searches",
			},
			[]string{"outcome"},
		),
		SubmitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Duration of itinerary searches",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "search_in_flight",
			Help:      "Itinerary searches waiting for the upstream",
		}),
	}

	for _, c := range []prometheus.Collector{m.Lookups, m.LookupDuration, m.LookupsDiscarded, m.Submissions, m.SubmitDuration, m.InFlight} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				return nil, fmt.Errorf("metrics already registered: %w", err)
			}
			return nil, err
		}
	}
	return m, nil
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLookupDone: func(_ context.Context, e *domain.LookupEvent) {
			m.Lookups.WithLabelValues(e.Field, outcome(e.Err, e.Results)).Inc()
			m.LookupDuration.WithLabelValues(e.Field).Observe(e.Duration.Seconds())
		},
		OnLookupDiscarded: func(_ context.Context, e *domain.LookupEvent) {
			m.LookupsDiscarded.WithLabelValues(e.Field).Inc()
		},
		OnSubmit: func(context.Context, *domain.SubmitEvent) {
			m.InFlight.Inc()
		},
		OnSubmitDone: func(_ context.Context, e *domain.SubmitEvent) {
			m.InFlight.Dec()
			o := outcome(e.Err, e.Results)
			m.Submissions.WithLabelValues(o).Inc()
			m.SubmitDuration.WithLabelValues(o).Observe(e.Duration.Seconds())
		},
	}
}

func outcome(err error, results int) string {
	switch {
	case err != nil:
		return OutcomeError
	case results == 0:
		return OutcomeEmpty
	}
	return OutcomeOK
}

// Handler exposes the metrics of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
