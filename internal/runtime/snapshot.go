package runtime

import (
	"maps"
	"slices"

	"github.com/aretw0/fable/pkg/domain"
)

// HydrateOptions tunes how a snapshot is turned back into a session.
type HydrateOptions struct {
	// Limits, when non-nil, replaces the limits stored in the snapshot.
	Limits *domain.Limits
}

// Snapshot extracts the pure, serializable part of a session.
func Snapshot(state *domain.State) domain.Snapshot {
	snap := domain.Snapshot{
		CurrentNodeID: state.CurrentNodeID,
		Stack:         slices.Clone(state.CallStack),
		Variables:     maps.Clone(state.Variables),
		Visited:       maps.Clone(state.Visited),
		IncludeDepth:  state.IncludeDepth,
		Limits:        state.Limits,
	}
	if snap.Stack == nil {
		snap.Stack = []domain.StackFrame{}
	}
	if snap.Variables == nil {
		snap.Variables = map[string]any{}
	}
	if snap.Visited == nil {
		snap.Visited = map[string]int{}
	}
	return snap
}

// Hydrate rebuilds a session bound to story from a snapshot. The current
// node and every stack frame's return node must exist in story, and the
// include depth must equal the stack size; otherwise an error is returned
// and no state is built.
func Hydrate(story *domain.Story, snap domain.Snapshot, opts HydrateOptions) (*domain.State, error) {
	if story == nil {
		return nil, newError(domain.CodeInvalidSave, "", "no story to restore into")
	}
	if snap.CurrentNodeID != "" && !story.HasNode(snap.CurrentNodeID) {
		return nil, withDetails(
			newError(domain.CodeMissingNode, snap.CurrentNodeID, "saved position does not exist in story '%s'", story.ID),
			map[string]any{"storyId": story.ID},
		)
	}
	for i, frame := range snap.Stack {
		if frame.ReturnTo != "" && !story.HasNode(frame.ReturnTo) {
			return nil, withDetails(
				newError(domain.CodeMissingReturn, frame.ReturnTo, "stack frame %d returns to a node that does not exist", i),
				map[string]any{"frame": i, "includeId": frame.IncludeID},
			)
		}
	}

	if snap.IncludeDepth != len(snap.Stack) {
		return nil, withDetails(
			newError(domain.CodeInvalidSave, snap.CurrentNodeID, "include depth %d does not match %d stack frames", snap.IncludeDepth, len(snap.Stack)),
			map[string]any{"includeDepth": snap.IncludeDepth, "stack": len(snap.Stack)},
		)
	}

	limits := snap.Limits
	if opts.Limits != nil {
		limits = *opts.Limits
	}

	state := domain.NewState(story, limits)
	state.CurrentNodeID = snap.CurrentNodeID
	state.CallStack = slices.Clone(snap.Stack)
	state.IncludeDepth = snap.IncludeDepth
	state.Variables = maps.Clone(snap.Variables)
	if state.Variables == nil {
		state.Variables = make(map[string]any)
	}
	state.Visited = maps.Clone(snap.Visited)
	if state.Visited == nil {
		state.Visited = make(map[string]int)
	}
	return state, nil
}
