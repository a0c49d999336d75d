package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the profile module: creation and
// transition counts plus critical path durations.
type Metrics struct {
	ProfilesCreated   prometheus.Counter
	ProfilesDeleted   prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	TransitionTime    prometheus.Histogram
	PatternRenderTime prometheus.Histogram
}

// New creates a Metrics instance with all profile module metrics registered on
// the default registry.
func New() *Metrics {
	return &Metrics{
		ProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cards_profiles_created_total",
			Help: "Total number of profiles created",
		}),
		ProfilesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cards_profiles_deleted_total",
			Help: "Total number of profiles deleted",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cards_profile_status_transitions_total",
			Help: "Total number of profile status transitions by target status",
		}, []string{"status"}),
		TransitionTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cards_profile_transition_duration_seconds",
			Help:    "Duration of profile status transitions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		PatternRenderTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cards_pattern_render_duration_seconds",
			Help:    "Duration of card pattern rendering",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// IncrementProfilesCreated records a successful profile creation.
func (m *Metrics) IncrementProfilesCreated() {
	if m == nil {
		return
	}
	m.ProfilesCreated.Inc()
}

// IncrementProfilesDeleted records a permanent profile removal.
func (m *Metrics) IncrementProfilesDeleted() {
	if m == nil {
		return
	}
	m.ProfilesDeleted.Inc()
}

// ObserveTransition records a completed status transition.
func (m *Metrics) ObserveTransition(status string, start time.Time) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(status).Inc()
	m.TransitionTime.Observe(time.Since(start).Seconds())
}

// ObservePatternRender records the duration of one pattern render.
func (m *Metrics) ObservePatternRender(start time.Time) {
	if m == nil {
		return
	}
	m.PatternRenderTime.Observe(time.Since(start).Seconds())
}
