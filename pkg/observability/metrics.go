package observability

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Metrics holds the collectors fed by lifecycle events.
type Metrics struct {
	steps       *prometheus.CounterVec
	lanes       *prometheus.CounterVec
	laneSeconds *prometheus.HistogramVec
	laneSteps   *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	active      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Registering twice on the same registry reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepwise_steps_total",
			Help: "Steps emitted by algorithm lanes",
		}, []string{"algorithm", "kind"}),
		lanes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepwise_lanes_finished_total",
			Help: "Lanes that reached their terminal step",
		}, []string{"algorithm", "found"}),
		laneSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stepwise_lane_duration_seconds",
			Help:    "Running time of a lane, pauses excluded",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"algorithm"}),
		laneSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stepwise_lane_steps",
			Help:    "Steps a lane needed to finish",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10),
		}, []string{"algorithm"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepwise_state_transitions_total",
			Help: "Run-state transitions of sessions",
		}, []string{"to"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stepwise_sessions_active",
			Help: "Sessions currently running or paused",
		}),
	}

	var err error
	m.steps = register(reg, m.steps, &err)
	m.lanes = register(reg, m.lanes, &err)
	m.laneSeconds = register(reg, m.laneSeconds, &err)
	m.laneSteps = register(reg, m.laneSteps, &err)
	m.transitions = register(reg, m.transitions, &err)
	m.active = register(reg, m.active, &err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, returning the collector already registered under
// the same descriptor if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, errs *error) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		*errs = errors.Join(*errs, err)
	}
	return c
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(string(e.Step.Algorithm), string(e.Step.Kind)).Inc()
		},
		OnLaneDone: func(_ context.Context, e *domain.LaneEvent) {
			algo := string(e.Summary.Algorithm)
			m.lanes.WithLabelValues(algo, strconv.FormatBool(e.Summary.Found)).Inc()
			m.laneSeconds.WithLabelValues(algo).Observe(e.Summary.Elapsed.Seconds())
			m.laneSteps.WithLabelValues(algo).Observe(float64(e.Summary.Steps))
		},
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			m.transitions.WithLabelValues(string(e.To)).Inc()
			switch was, is := live(e.From), live(e.To); {
			case !was && is:
				m.active.Inc()
			case was && !is:
				m.active.Dec()
			}
		},
	}
}

func live(s domain.RunState) bool {
	return s == domain.StateRunning || s == domain.StatePaused
}
