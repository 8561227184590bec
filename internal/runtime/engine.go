package runtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/fable/internal/logging"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/expr"
)

// ConditionEvaluator decides guards and branches. It must not fail: a
// broken expression should simply evaluate to false.
type ConditionEvaluator func(expression string, vars map[string]any) bool

// Engine walks story graphs. It holds no session data, so one Engine may
// serve many sessions; each *domain.State must still belong to one caller.
type Engine struct {
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	evaluator ConditionEvaluator
	now       func() time.Time

	programs sync.Map // expression -> *expr.Program, or nil when it does not parse
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConditionEvaluator replaces the built-in expression evaluator.
func WithConditionEvaluator(eval ConditionEvaluator) EngineOption {
	return func(e *Engine) {
		e.evaluator = eval
	}
}

// WithClock overrides the time source used for hook timestamps and saves.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// evaluate runs a guard. Parsed programs are cached per expression text.
func (e *Engine) evaluate(expression string, vars map[string]any) bool {
	if e.evaluator != nil {
		return e.evaluator(expression, vars)
	}
	cached, ok := e.programs.Load(expression)
	if !ok {
		p, err := expr.Parse(expression)
		if err != nil {
			p = nil
		}
		cached, _ = e.programs.LoadOrStore(expression, p)
	}
	p, _ := cached.(*expr.Program)
	if p == nil {
		return false
	}
	return p.Eval(vars).Truthy()
}

func (e *Engine) nodeEvent(state *domain.State, node domain.Node) *domain.NodeEvent {
	return &domain.NodeEvent{
		Timestamp: e.now(),
		StoryID:   state.Story.ID,
		NodeID:    node.NodeID(),
		Kind:      node.Kind(),
		Visits:    state.Visited[node.NodeID()],
	}
}

func (e *Engine) emitNodeEnter(ev *domain.NodeEvent) {
	if e.hooks.OnNodeEnter != nil {
		e.hooks.OnNodeEnter(ev)
	}
}

func (e *Engine) emitFrame(state *domain.State, frame *domain.Frame, autoSteps int) {
	if e.hooks.OnFrame == nil {
		return
	}
	e.hooks.OnFrame(&domain.FrameEvent{
		Timestamp: e.now(),
		StoryID:   state.Story.ID,
		Frame:     frame,
		AutoSteps: autoSteps,
	})
}

func (e *Engine) fail(state *domain.State, err *domain.RuntimeError) error {
	e.logger.Warn("runtime error",
		"code", string(err.Code),
		"node_id", err.NodeID,
		"error", err.Message)

	if e.hooks.OnError != nil {
		storyID := ""
		if state != nil && state.Story != nil {
			storyID = state.Story.ID
		}
		e.hooks.OnError(&domain.ErrorEvent{
			Timestamp: e.now(),
			StoryID:   storyID,
			Err:       err,
		})
	}
	return err
}
