package runtime

import (
	"fmt"
	"maps"
	"strings"

	"github.com/aretw0/fable/pkg/domain"
)

// Start resets the session and plays from entryID, or from the story's
// start passage when entryID is empty, up to the first frame.
//
// On error the state is left exactly as it was.
func (e *Engine) Start(state *domain.State, entryID string) (*domain.Frame, error) {
	if state == nil || state.Story == nil {
		return nil, e.fail(state, newError(domain.CodeNoStartNode, "", "session has no story"))
	}

	entry := entryID
	if entry == "" {
		id, ok := state.Story.StartNode()
		if !ok {
			return nil, e.fail(state, newError(domain.CodeNoStartNode, "", "story '%s' has no start passage", state.Story.ID))
		}
		entry = id
	}
	if !state.Story.HasNode(entry) {
		return nil, e.fail(state, newError(domain.CodeNodeNotFound, entry, "entry node does not exist"))
	}

	work := state.Clone()
	work.Limits = work.Limits.WithDefaults()
	work.Variables = state.Story.InitialVariables()
	work.Visited = make(map[string]int)
	work.CallStack = nil
	work.IncludeDepth = 0
	work.CurrentNodeID = ""

	e.logger.Debug("session started", "story_id", state.Story.ID, "entry", entry)
	return e.run(state, work, entry, nil)
}

// Choose follows one of the choices of the current frame and plays up to
// the next frame. choice may be a choice target or a choice ID as shown in
// the frame ("node#index").
//
// On error the state is left exactly as it was, so the caller may retry.
func (e *Engine) Choose(state *domain.State, choice string) (*domain.Frame, error) {
	if state == nil || state.Story == nil {
		return nil, e.fail(state, newError(domain.CodeNoStartNode, "", "session has no story"))
	}
	if state.CurrentNodeID == "" {
		return nil, e.fail(state, newError(domain.CodeInvalidChoice, "", "session has not been started"))
	}

	node, ok := state.Story.Node(state.CurrentNodeID)
	if !ok {
		return nil, e.fail(state, newError(domain.CodeNodeNotFound, state.CurrentNodeID, "current node does not exist"))
	}

	work := state.Clone()
	work.Limits = work.Limits.WithDefaults()

	visible := e.visibleChoices(node, work.Variables, nil)
	for _, c := range visible {
		if c.ID == choice || c.Target == choice {
			e.logger.Debug("choice taken", "node_id", node.NodeID(), "choice", c.ID, "target", c.Target)
			return e.run(state, work, c.Target, nil)
		}
	}

	available := make([]string, 0, len(visible))
	for _, c := range visible {
		available = append(available, c.Target)
	}
	return nil, e.fail(state, withDetails(
		newError(domain.CodeInvalidChoice, node.NodeID(), "'%s' is not an available choice", choice),
		map[string]any{"choice": choice, "available": available},
	))
}

// progress records what one advance did, for the hooks fired on commit.
type progress struct {
	autoSteps int
	entered   []*domain.NodeEvent
}

// run advances work from target and commits it into state on success.
// Hooks see only committed work: a failed call reports its error and no
// node entries.
func (e *Engine) run(state, work *domain.State, target string, events []domain.Event) (*domain.Frame, error) {
	frame, p, rtErr := e.advance(work, target, events)
	if rtErr != nil {
		return nil, e.fail(state, rtErr)
	}
	*state = *work
	for _, ev := range p.entered {
		e.emitNodeEnter(ev)
	}
	e.emitFrame(state, frame, p.autoSteps)
	return frame, nil
}

// advance walks silent nodes until a node yields a frame. It mutates work
// only; the caller decides whether to commit.
func (e *Engine) advance(work *domain.State, target string, events []domain.Event) (*domain.Frame, progress, *domain.RuntimeError) {
	var p progress
	current := target

	for {
		node, ok := work.Story.Node(current)
		if !ok {
			if current == "" {
				return nil, p, newError(domain.CodeNodeNotFound, work.CurrentNodeID, "transition has no target")
			}
			return nil, p, newError(domain.CodeNodeNotFound, current, "node does not exist")
		}

		work.Visited[current]++
		if visits := work.Visited[current]; visits > work.Limits.MaxRepeats {
			return nil, p, withDetails(
				newError(domain.CodeStepLimit, current, "node visited %d times (limit %d)", visits, work.Limits.MaxRepeats),
				map[string]any{"limit": "maxRepeats", "max": work.Limits.MaxRepeats, "visits": visits},
			)
		}
		work.CurrentNodeID = current

		e.logger.Debug("node entered", "node_id", current, "kind", string(node.Kind()))
		p.entered = append(p.entered, e.nodeEvent(work, node))

		s := &stepper{engine: e, state: work, events: events}
		if err := node.Accept(s); err != nil {
			rtErr, ok := err.(*domain.RuntimeError)
			if !ok {
				rtErr = &domain.RuntimeError{Code: domain.CodeNodeNotFound, Message: err.Error(), NodeID: current, Err: err}
			}
			return nil, p, rtErr
		}
		events = s.events

		if s.frame != nil {
			s.frame.Events = events
			if s.frame.Events == nil {
				s.frame.Events = []domain.Event{}
			}
			return s.frame, p, nil
		}

		p.autoSteps++
		if p.autoSteps > work.Limits.MaxAutoSteps {
			return nil, p, withDetails(
				newError(domain.CodeStepLimit, current, "more than %d automatic steps without reaching a passage", work.Limits.MaxAutoSteps),
				map[string]any{"limit": "maxAutoSteps", "max": work.Limits.MaxAutoSteps},
			)
		}
		current = s.next
	}
}

// visibleChoices returns the choices of node whose guards hold, as shown
// to the player. Hidden ones are recorded in events when it is not nil.
func (e *Engine) visibleChoices(node domain.Node, vars map[string]any, events *[]domain.Event) []domain.FrameChoice {
	choices := domain.ChoicesOf(node)
	visible := make([]domain.FrameChoice, 0, len(choices))
	for i, c := range choices {
		if c.Condition != "" && !e.evaluate(c.Condition, vars) {
			if events != nil {
				*events = append(*events, domain.Event{
					Code:     domain.EventChoiceHidden,
					Message:  fmt.Sprintf("choice '%s' hidden: %s", c.Text, c.Condition),
					Severity: domain.SeverityInfo,
					NodeID:   node.NodeID(),
					Data:     map[string]any{"index": i, "target": c.Target, "condition": c.Condition},
				})
			}
			continue
		}
		visible = append(visible, domain.FrameChoice{
			ID:     fmt.Sprintf("%s#%d", node.NodeID(), i),
			Text:   c.Text,
			Target: c.Target,
		})
	}
	return visible
}

// stepper performs one transition. Exactly one of frame or next is set
// after a successful visit.
type stepper struct {
	engine *Engine
	state  *domain.State
	events []domain.Event

	frame *domain.Frame
	next  string
}

func (s *stepper) event(code, nodeID, msg string, data map[string]any) {
	s.events = append(s.events, domain.Event{
		Code:     code,
		Message:  msg,
		Severity: domain.SeverityInfo,
		NodeID:   nodeID,
		Data:     data,
	})
}

func (s *stepper) yield(nodeID, text string, choices []domain.FrameChoice, ending bool) {
	s.frame = &domain.Frame{
		NodeID:    nodeID,
		Text:      text,
		Choices:   choices,
		Ending:    ending,
		Variables: maps.Clone(s.state.Variables),
	}
	if s.frame.Variables == nil {
		s.frame.Variables = map[string]any{}
	}
}

func (s *stepper) VisitPassage(n *domain.Passage) error {
	visible := s.engine.visibleChoices(n, s.state.Variables, &s.events)
	ending := len(visible) == 0 || n.Ending

	if ending && len(s.state.CallStack) > 0 {
		top := s.state.CallStack[len(s.state.CallStack)-1]
		s.state.CallStack = s.state.CallStack[:len(s.state.CallStack)-1]
		s.state.IncludeDepth--
		if top.ReturnTo != "" {
			s.event(domain.EventIncludeReturn, n.ID,
				fmt.Sprintf("returned from include '%s' to '%s'", top.IncludeID, top.ReturnTo),
				map[string]any{"includeId": top.IncludeID, "returnTo": top.ReturnTo})
			s.next = top.ReturnTo
			return nil
		}
	}

	s.yield(n.ID, n.Content, visible, ending)
	return nil
}

func (s *stepper) VisitChoice(n *domain.ChoiceNode) error {
	visible := s.engine.visibleChoices(n, s.state.Variables, &s.events)
	s.yield(n.ID, n.Prompt, visible, len(visible) == 0)
	return nil
}

func (s *stepper) VisitCondition(n *domain.Condition) error {
	result := s.engine.evaluate(n.Expression, s.state.Variables)
	target, branch := n.IfFalse, domain.BranchFalse
	if result {
		target, branch = n.IfTrue, domain.BranchTrue
	}
	s.event(domain.EventConditionBranch, n.ID,
		fmt.Sprintf("'%s' is %s, going to '%s'", n.Expression, branch, target),
		map[string]any{"expression": n.Expression, "result": result, "target": target})
	s.next = target
	return nil
}

func (s *stepper) VisitVariable(n *domain.Variable) error {
	if n.Next == "" {
		return newError(domain.CodeNoNext, n.ID, "variable node has no next node")
	}

	before := maps.Clone(s.state.Variables)
	applyMutations(s.state.Variables, n)

	if changes := domain.DiffVariables(before, s.state.Variables); len(changes) > 0 {
		s.event(domain.EventVariableUpdate, n.ID,
			fmt.Sprintf("updated %s", strings.Join(domain.ChangedKeys(changes), ", ")),
			map[string]any{"changes": changes})
	}
	s.next = n.Next
	return nil
}

func (s *stepper) VisitInclude(n *domain.Include) error {
	if s.state.IncludeDepth >= s.state.Limits.MaxIncludeDepth {
		return withDetails(
			newError(domain.CodeIncludeDepth, n.ID, "include depth limit %d reached", s.state.Limits.MaxIncludeDepth),
			map[string]any{"max": s.state.Limits.MaxIncludeDepth},
		)
	}

	entry := n.Entry
	if entry == "" {
		id, ok := s.state.Story.StartNode()
		if !ok {
			return newError(domain.CodeNoStartNode, n.ID, "include has no entry and the story has no start passage")
		}
		entry = id
	}

	s.state.CallStack = append(s.state.CallStack, domain.StackFrame{ReturnTo: n.Return, IncludeID: n.ID})
	s.state.IncludeDepth++
	s.event(domain.EventIncludeEnter, n.ID,
		fmt.Sprintf("entering '%s' at '%s'", n.Path, entry),
		map[string]any{"path": n.Path, "entry": entry, "returnTo": n.Return, "depth": s.state.IncludeDepth})
	s.next = entry
	return nil
}

func (s *stepper) VisitComment(n *domain.Comment) error {
	edges := s.state.Story.Outgoing(n.ID)
	if len(edges) == 0 {
		return newError(domain.CodeCommentDeadEnd, n.ID, "comment node has nowhere to go")
	}
	s.event(domain.EventCommentSkip, n.ID, "skipped comment", map[string]any{"target": edges[0].Target})
	s.next = edges[0].Target
	return nil
}
