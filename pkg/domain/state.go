package domain

import (
	"maps"
	"slices"
	"time"
)

// Default resource bounds for a play session.
const (
	DefaultMaxAutoSteps    = 500
	DefaultMaxIncludeDepth = 8
	DefaultMaxRepeats      = 200
)

// SaveVersion is the only save envelope format understood by LoadGame.
const SaveVersion = "1.0"

// Limits bounds the work a session may do.
type Limits struct {
	// MaxAutoSteps caps silent transitions (condition, variable, include,
	// comment, include-return) within one Start or Choose call.
	MaxAutoSteps int `json:"maxAutoSteps"`
	// MaxIncludeDepth caps nested includes.
	MaxIncludeDepth int `json:"maxIncludeDepth"`
	// MaxRepeats caps the visits to any single node over the whole session.
	MaxRepeats int `json:"maxRepeats"`
}

// DefaultLimits returns the stock resource bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxAutoSteps:    DefaultMaxAutoSteps,
		MaxIncludeDepth: DefaultMaxIncludeDepth,
		MaxRepeats:      DefaultMaxRepeats,
	}
}

// WithDefaults fills unset (zero or negative) bounds with the defaults.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxAutoSteps <= 0 {
		l.MaxAutoSteps = d.MaxAutoSteps
	}
	if l.MaxIncludeDepth <= 0 {
		l.MaxIncludeDepth = d.MaxIncludeDepth
	}
	if l.MaxRepeats <= 0 {
		l.MaxRepeats = d.MaxRepeats
	}
	return l
}

// StackFrame records an active include.
type StackFrame struct {
	ReturnTo  string `json:"returnTo,omitempty"`
	IncludeID string `json:"includeId"`
}

// State is a live play session bound to a Story.
// It is owned by a single caller and is not safe for concurrent use.
type State struct {
	Story         *Story
	CurrentNodeID string
	CallStack     []StackFrame
	Variables     map[string]any
	Visited       map[string]int
	IncludeDepth  int
	Limits        Limits
}

// NewState creates a session positioned nowhere, with the story's initial
// variables and the given limits (zero fields take defaults).
func NewState(story *Story, limits Limits) *State {
	return &State{
		Story:     story,
		Variables: story.InitialVariables(),
		Visited:   make(map[string]int),
		Limits:    limits.WithDefaults(),
	}
}

// Clone returns a deep copy of the session data. The Story is shared.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.CallStack = slices.Clone(s.CallStack)
	next.Variables = maps.Clone(s.Variables)
	if next.Variables == nil {
		next.Variables = make(map[string]any)
	}
	next.Visited = maps.Clone(s.Visited)
	if next.Visited == nil {
		next.Visited = make(map[string]int)
	}
	return &next
}

// Snapshot is the pure, serializable part of a State.
type Snapshot struct {
	CurrentNodeID string         `json:"currentNodeId"`
	Stack         []StackFrame   `json:"stack"`
	Variables     map[string]any `json:"variables"`
	Visited       map[string]int `json:"visited"`
	IncludeDepth  int            `json:"includeDepth"`
	Limits        Limits         `json:"limits"`
}

// SaveData is the versioned envelope written by SaveGame.
type SaveData struct {
	Version  string         `json:"version"`
	StoryID  string         `json:"storyId,omitempty"`
	SavedAt  time.Time      `json:"savedAt"`
	SaveName string         `json:"saveName,omitempty"`
	Snapshot Snapshot       `json:"snapshot"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Clone returns a copy of the envelope that shares no maps or slices with s.
// Metadata values are copied shallowly.
func (s SaveData) Clone() SaveData {
	s.Snapshot.Stack = slices.Clone(s.Snapshot.Stack)
	s.Snapshot.Variables = maps.Clone(s.Snapshot.Variables)
	s.Snapshot.Visited = maps.Clone(s.Snapshot.Visited)
	s.Metadata = maps.Clone(s.Metadata)
	return s
}
