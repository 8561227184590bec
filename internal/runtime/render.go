package runtime

import (
	"maps"

	"github.com/aretw0/fable/pkg/domain"
)

// Current rebuilds the frame of the node the session is parked on without
// moving it. Restored sessions use it to show where play stopped.
func (e *Engine) Current(state *domain.State) (*domain.Frame, error) {
	if state == nil || state.Story == nil {
		return nil, newError(domain.CodeNoStartNode, "", "session has no story")
	}
	if state.CurrentNodeID == "" {
		return nil, newError(domain.CodeInvalidChoice, "", "session has not been started")
	}
	node, ok := state.Story.Node(state.CurrentNodeID)
	if !ok {
		return nil, newError(domain.CodeNodeNotFound, state.CurrentNodeID, "current node does not exist")
	}

	events := []domain.Event{}
	choices := e.visibleChoices(node, state.Variables, &events)
	frame := &domain.Frame{
		NodeID:    node.NodeID(),
		Choices:   choices,
		Ending:    len(choices) == 0,
		Variables: maps.Clone(state.Variables),
		Events:    events,
	}
	if frame.Variables == nil {
		frame.Variables = map[string]any{}
	}

	switch n := node.(type) {
	case *domain.Passage:
		frame.Text = n.Content
		frame.Ending = frame.Ending || n.Ending
	case *domain.ChoiceNode:
		frame.Text = n.Prompt
	default:
		return nil, newError(domain.CodeMissingNode, n.NodeID(), "session is parked on a %s node, not a passage or choice", n.Kind())
	}
	return frame, nil
}
