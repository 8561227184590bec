package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/expr"
)

const minContentLength = 10

func startPassages(g *graph) []string {
	var starts []string
	for _, id := range g.ids {
		if p, ok := g.nodes[id].(*domain.Passage); ok && p.Start {
			starts = append(starts, id)
		}
	}
	return starts
}

func checkStartNodes(g *graph, r *reporter) {
	starts := startPassages(g)
	switch {
	case len(starts) == 0:
		r.add(domain.IssueNoStartNode, domain.SeverityError, domain.CategoryStructure, "",
			"story has no passage marked as start", nil)
	case len(starts) > 1:
		for _, id := range starts {
			r.add(domain.IssueMultipleStartNodes, domain.SeverityError, domain.CategoryStructure, id,
				fmt.Sprintf("passage '%s' is one of %d start passages", id, len(starts)),
				map[string]any{"startNodes": starts})
		}
	}
}

func checkReferences(g *graph, r *reporter) {
	for _, e := range g.edges {
		if g.exists(e.Target) {
			continue
		}
		msg := fmt.Sprintf("%s edge from '%s' points to missing node '%s'", e.Type, e.Source, e.Target)
		if e.Target == "" {
			msg = fmt.Sprintf("%s edge from '%s' has no target", e.Type, e.Source)
		}
		r.add(domain.IssueBrokenReference, domain.SeverityError, domain.CategoryReference, e.Source, msg,
			map[string]any{"target": e.Target, "edgeType": string(e.Type)})
	}

	// Include entries are jumps too, though they are not edges.
	for _, id := range g.ids {
		inc, ok := g.nodes[id].(*domain.Include)
		if !ok || inc.Entry == "" || g.exists(inc.Entry) {
			continue
		}
		r.add(domain.IssueBrokenReference, domain.SeverityError, domain.CategoryReference, id,
			fmt.Sprintf("include '%s' enters missing node '%s'", id, inc.Entry),
			map[string]any{"target": inc.Entry, "edgeType": "entry"})
	}
}

// checkReachability crawls breadth-first from every start passage.
func checkReachability(g *graph, r *reporter) {
	starts := startPassages(g)
	if len(starts) == 0 {
		return
	}

	visited := make(map[string]bool)
	queue := append([]string(nil), starts...)
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		for _, e := range g.outgoing[currentID] {
			if g.exists(e.Target) && !visited[e.Target] {
				queue = append(queue, e.Target)
			}
		}
		if inc, ok := g.nodes[currentID].(*domain.Include); ok && inc.Entry != "" && g.exists(inc.Entry) {
			queue = append(queue, inc.Entry)
		}
	}

	for _, id := range g.ids {
		if visited[id] || g.nodes[id].Kind() == domain.KindComment {
			continue
		}
		r.add(domain.IssueUnreachableNode, domain.SeverityWarning, domain.CategoryReachability, id,
			fmt.Sprintf("node '%s' cannot be reached from the start", id), nil)
	}
}

func checkDeadEnds(g *graph, r *reporter) {
	for _, id := range g.ids {
		switch n := g.nodes[id].(type) {
		case *domain.Passage:
			if len(n.Choices) == 0 && !n.Ending {
				r.add(domain.IssueUnmarkedDeadEnd, domain.SeverityWarning, domain.CategoryFlow, id,
					fmt.Sprintf("passage '%s' has no choices and is not marked as an ending", id), nil)
			}
		case *domain.ChoiceNode:
			if len(n.Choices) == 0 {
				r.add(domain.IssueChoiceWithoutOptions, domain.SeverityError, domain.CategoryFlow, id,
					fmt.Sprintf("choice node '%s' offers no options", id), nil)
			}
		case *domain.Include:
			if n.Return == "" {
				r.add(domain.IssueIncludeNoReturn, domain.SeverityWarning, domain.CategoryFlow, id,
					fmt.Sprintf("include '%s' has no return node", id), map[string]any{"path": n.Path})
			}
		}
	}
}

func checkContent(g *graph, r *reporter) {
	for _, id := range g.ids {
		p, ok := g.nodes[id].(*domain.Passage)
		if !ok {
			continue
		}
		content := strings.TrimSpace(p.Content)
		switch length := utf8.RuneCountInString(content); {
		case length == 0:
			r.add(domain.IssueEmptyContent, domain.SeverityWarning, domain.CategoryContent, id,
				fmt.Sprintf("passage '%s' has no content", id), nil)
		case length < minContentLength:
			r.add(domain.IssueShortContent, domain.SeverityInfo, domain.CategoryContent, id,
				fmt.Sprintf("passage '%s' content is only %d characters", id, length),
				map[string]any{"length": length})
		}
	}
}

func checkConditions(g *graph, r *reporter) {
	for _, id := range g.ids {
		n := g.nodes[id]
		if cond, ok := n.(*domain.Condition); ok {
			if err := expr.CheckSyntax(cond.Expression); err != nil {
				r.add(domain.IssueInvalidCondition, domain.SeverityWarning, domain.CategoryExpression, id,
					fmt.Sprintf("condition '%s' looks malformed: %v", id, err),
					map[string]any{"expression": cond.Expression})
			}
			if effects := expr.Effects(cond.Expression); len(effects) > 0 {
				names := make([]string, 0, len(effects))
				for _, e := range effects {
					names = append(names, string(e))
				}
				r.add(domain.IssueEffectfulCondition, domain.SeverityWarning, domain.CategoryState, id,
					fmt.Sprintf("condition '%s' appears to have side effects (%s)", id, strings.Join(names, ", ")),
					map[string]any{"expression": cond.Expression, "effects": names})
			}
		}

		for i, c := range domain.ChoicesOf(n) {
			if c.Condition == "" {
				continue
			}
			if err := expr.CheckSyntax(c.Condition); err != nil {
				r.add(domain.IssueInvalidCondition, domain.SeverityWarning, domain.CategoryExpression, id,
					fmt.Sprintf("guard on choice %d of '%s' looks malformed: %v", i, id, err),
					map[string]any{"expression": c.Condition, "choice": i})
			}
		}
	}
}

func checkVariables(g *graph, r *reporter) {
	for _, id := range g.ids {
		v, ok := g.nodes[id].(*domain.Variable)
		if !ok {
			continue
		}
		if !v.Changes() {
			r.add(domain.IssueNoStateChange, domain.SeverityWarning, domain.CategoryState, id,
				fmt.Sprintf("variable node '%s' does not change anything", id), nil)
		}
		if v.Next == "" {
			r.add(domain.IssueVariableNoNext, domain.SeverityWarning, domain.CategoryState, id,
				fmt.Sprintf("variable node '%s' has no next node", id), nil)
		}
	}
}
