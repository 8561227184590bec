package observability

import (
	"fmt"
	"strconv"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors fed by runtime hooks.
type Metrics struct {
	NodeVisits *prometheus.CounterVec
	Frames     *prometheus.CounterVec
	AutoSteps  prometheus.Histogram
	Errors     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fable_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"story_id", "node_id", "kind"},
		),
		Frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fable_frames_total",
				Help: "Total number of frames shown to players",
			},
			[]string{"story_id", "ending"},
		),
		AutoSteps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fable_auto_steps",
				Help:    "Silent transitions taken before each frame",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fable_runtime_errors_total",
				Help: "Total number of failed Start and Choose calls",
			},
			[]string{"story_id", "code"},
		),
	}

	for _, c := range []prometheus.Collector{m.NodeVisits, m.Frames, m.AutoSteps, m.Errors} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.StoryID, e.NodeID, string(e.Kind)).Inc()
		},
		OnFrame: func(e *domain.FrameEvent) {
			m.Frames.WithLabelValues(e.StoryID, strconv.FormatBool(e.Frame.Ending)).Inc()
			m.AutoSteps.Observe(float64(e.AutoSteps))
		},
		OnError: func(e *domain.ErrorEvent) {
			m.Errors.WithLabelValues(e.StoryID, string(e.Err.Code)).Inc()
		},
	}
}
