package observability

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/aretw0/marquee/pkg/domain"
)

const namespace = "marquee"

// Metrics holds the collectors of one presentation, on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Transitions        *prometheus.CounterVec
	TransitionDuration prometheus.Histogram
	ModeChanges        *prometheus.CounterVec
	Finales            prometheus.Counter
	ParticlesSpawned   *prometheus.CounterVec
	ParticlesLive      prometheus.Gauge
	Reschedules        *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Transitions by result (ok, error, dropped).",
		}, []string{"result"}),
		TransitionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transition_duration_seconds",
			Help:      "Duration of completed transitions.",
			Buckets:   []float64{0.5, 1, 2, 3, 5, 8},
		}),
		ModeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_changes_total",
			Help:      "Layout mode changes by target mode.",
		}, []string{"to"}),
		Finales: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finales_total",
			Help:      "Finale sequences started.",
		}),
		ParticlesSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "particles_spawned_total",
			Help:      "Particles spawned by variant.",
		}, []string{"variant"}),
		ParticlesLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles_live",
			Help:      "Particles currently attached to a host.",
		}),
		Reschedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_total",
			Help:      "Scheduler slot arming by slot and outcome.",
		}, []string{"slot", "outcome"}),
	}
	m.registry.MustRegister(
		m.Transitions, m.TransitionDuration, m.ModeChanges, m.Finales,
		m.ParticlesSpawned, m.ParticlesLive, m.Reschedules,
	)
	return m
}

// Registry exposes the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionEnd: func(_ context.Context, e *domain.TransitionEvent) {
			if e.Err != nil {
				m.Transitions.WithLabelValues("error").Inc()
				return
			}
			m.Transitions.WithLabelValues("ok").Inc()
			m.TransitionDuration.Observe(e.Duration.Seconds())
		},
		OnTransitionDropped: func(context.Context, *domain.TransitionEvent) {
			m.Transitions.WithLabelValues("dropped").Inc()
		},
		OnModeChange: func(_ context.Context, e *domain.ModeEvent) {
			m.ModeChanges.WithLabelValues(string(e.To)).Inc()
		},
		OnFinale: func(context.Context, *domain.FinaleEvent) {
			m.Finales.Inc()
		},
		OnParticleSpawn: func(_ context.Context, e *domain.ParticleEvent) {
			m.ParticlesSpawned.WithLabelValues(string(e.Variant)).Inc()
			m.ParticlesLive.Inc()
		},
		OnParticleRemove: func(context.Context, *domain.ParticleEvent) {
			m.ParticlesLive.Dec()
		},
		OnReschedule: func(_ context.Context, e *domain.ScheduleEvent) {
			outcome := "armed"
			if e.Dropped {
				outcome = "dropped"
			}
			m.Reschedules.WithLabelValues(e.Slot, outcome).Inc()
		},
	}
}

// Summary writes one line per sample, sorted by metric name.
func (m *Metrics) Summary(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if _, err := fmt.Fprintf(w, "%s%s %s\n", mf.GetName(), labels(metric), value(mf.GetType(), metric)); err != nil {
				return err
			}
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	pairs := m.GetLabel()
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.GetName() + "=" + strconv.Quote(p.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func value(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return strconv.FormatFloat(m.GetCounter().GetValue(), 'g', -1, 64)
	case dto.MetricType_GAUGE:
		return strconv.FormatFloat(m.GetGauge().GetValue(), 'g', -1, 64)
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%.3fs", h.GetSampleCount(), h.GetSampleSum())
	}
	return "?"
}
