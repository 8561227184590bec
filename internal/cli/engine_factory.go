package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/fable"
	"github.com/aretw0/fable/internal/config"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// engineSetup is what createEngine hands back besides the engine.
type engineSetup struct {
	engine   *fable.Engine
	registry *prometheus.Registry
}

// createEngine initializes a fable engine with standard CLI conventions:
// limits from the environment, lifecycle logging in debug mode and, when
// asked, a private metrics registry.
func createEngine(cfg config.Config, logger *slog.Logger, debug, withMetrics bool) (*engineSetup, error) {
	var hooks []domain.LifecycleHooks
	if debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}

	setup := &engineSetup{}
	if withMetrics {
		setup.registry = prometheus.NewRegistry()
		metrics, err := observability.NewMetrics(setup.registry)
		if err != nil {
			return nil, fmt.Errorf("error initializing metrics: %w", err)
		}
		hooks = append(hooks, metrics.Hooks())
	}

	setup.engine = fable.New(
		fable.WithLogger(logger),
		fable.WithLimits(cfg.Limits()),
		fable.WithLifecycleHooks(observability.Combine(hooks...)),
	)
	return setup, nil
}
