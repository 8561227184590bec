package fable

import (
	"log/slog"
	"time"

	"github.com/aretw0/fable/internal/logging"
	"github.com/aretw0/fable/internal/runtime"
	"github.com/aretw0/fable/internal/validator"
	"github.com/aretw0/fable/pkg/adapters/document"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/expr"
)

// ConditionEvaluator decides choice guards and condition branches.
type ConditionEvaluator = runtime.ConditionEvaluator

// SaveOptions carries the optional parts of a save envelope.
type SaveOptions = runtime.SaveOptions

// HydrateOptions tunes how a snapshot becomes a session again.
type HydrateOptions = runtime.HydrateOptions

// Engine is the high-level entry point for the fable library.
// It wraps the internal runtime and validator behind one configured value.
type Engine struct {
	runtime   *runtime.Engine
	evaluator ConditionEvaluator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	limits    domain.Limits
	clock     func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConditionEvaluator replaces the built-in expression evaluator.
func WithConditionEvaluator(eval ConditionEvaluator) Option {
	return func(e *Engine) {
		e.evaluator = eval
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLimits sets the bounds given to new sessions. Zero fields keep their defaults.
func WithLimits(limits domain.Limits) Option {
	return func(e *Engine) {
		e.limits = limits
	}
}

// WithClock overrides the time source used by hooks and saves.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	eng.limits = eng.limits.WithDefaults()

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithClock(eng.clock),
	}
	if eng.evaluator != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithConditionEvaluator(eng.evaluator))
	}
	eng.runtime = runtime.NewEngine(runtimeOpts...)
	return eng
}

// Limits returns the bounds new sessions receive.
func (e *Engine) Limits() domain.Limits {
	return e.limits
}

// NewSession creates an unstarted session for story.
func (e *Engine) NewSession(story *domain.Story) *domain.State {
	return domain.NewState(story, e.limits)
}

// Validate checks story for structural, flow, content and expression problems.
func (e *Engine) Validate(story *domain.Story) domain.ValidationResult {
	return validator.ValidateWith(story, validator.WithLogger(e.logger))
}

// Start resets state and plays from entryID (or the start passage) to the first frame.
func (e *Engine) Start(state *domain.State, entryID string) (*domain.Frame, error) {
	return e.runtime.Start(state, entryID)
}

// Choose takes one of the current frame's choices, by ID or target, and
// plays to the next frame.
func (e *Engine) Choose(state *domain.State, choice string) (*domain.Frame, error) {
	return e.runtime.Choose(state, choice)
}

// Current returns the frame the session is parked on without moving it.
func (e *Engine) Current(state *domain.State) (*domain.Frame, error) {
	return e.runtime.Current(state)
}

// SaveGame wraps a snapshot of state in a versioned envelope.
func (e *Engine) SaveGame(state *domain.State, opts SaveOptions) domain.SaveData {
	return e.runtime.SaveGame(state, opts)
}

// LoadGame restores a session from save.
func (e *Engine) LoadGame(story *domain.Story, save domain.SaveData, opts HydrateOptions) (*domain.State, error) {
	return runtime.LoadGame(story, save, opts)
}

// Parse decodes a YAML story document.
func Parse(data []byte) (*domain.Story, error) {
	return document.Parse(data)
}

// LoadStory reads a YAML story document from disk.
func LoadStory(path string) (*domain.Story, error) {
	return document.LoadFile(path)
}

// MarshalStory encodes story as a YAML document.
func MarshalStory(story *domain.Story) ([]byte, error) {
	return document.Marshal(story)
}

// Validate checks story with a default, silent validator.
func Validate(story *domain.Story) domain.ValidationResult {
	return validator.Validate(story)
}

// Snapshot extracts the serializable part of a session.
func Snapshot(state *domain.State) domain.Snapshot {
	return runtime.Snapshot(state)
}

// Hydrate rebuilds a session bound to story from snap.
func Hydrate(story *domain.Story, snap domain.Snapshot, opts HydrateOptions) (*domain.State, error) {
	return runtime.Hydrate(story, snap, opts)
}

// SerializeSaveData encodes a save envelope as JSON.
func SerializeSaveData(save domain.SaveData) ([]byte, error) {
	return runtime.SerializeSaveData(save)
}

// DeserializeSaveData decodes and checks a JSON save envelope.
func DeserializeSaveData(data []byte) (domain.SaveData, error) {
	return runtime.DeserializeSaveData(data)
}

// Evaluate reports whether expression is truthy against vars. Malformed
// expressions are false.
func Evaluate(expression string, vars map[string]any) bool {
	return expr.Evaluate(expression, vars)
}

// EvaluateValue evaluates expression and returns its result as a Go value
// (nil, bool, float64 or string).
func EvaluateValue(expression string, vars map[string]any) (any, error) {
	v, err := expr.EvaluateValue(expression, vars)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// ValidateExpression parses expression without evaluating it.
func ValidateExpression(expression string) expr.ValidationResult {
	return expr.Validate(expression)
}
