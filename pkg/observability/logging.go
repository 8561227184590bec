package observability

import (
	"log/slog"

	"github.com/aretw0/fable/pkg/domain"
)

// LoggingHooks logs node entries and frames at debug level and runtime
// errors at error level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			logger.Debug("node_enter",
				"story_id", e.StoryID,
				"node_id", e.NodeID,
				"kind", string(e.Kind),
				"visits", e.Visits,
			)
		},
		OnFrame: func(e *domain.FrameEvent) {
			logger.Debug("frame",
				"story_id", e.StoryID,
				"node_id", e.Frame.NodeID,
				"choices", len(e.Frame.Choices),
				"ending", e.Frame.Ending,
				"auto_steps", e.AutoSteps,
			)
		},
		OnError: func(e *domain.ErrorEvent) {
			logger.Error("runtime_error",
				"story_id", e.StoryID,
				"code", string(e.Err.Code),
				"node_id", e.Err.NodeID,
				"err", e.Err.Message,
			)
		},
	}
}
