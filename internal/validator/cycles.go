package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/fable/pkg/domain"
)

type color int

const (
	white color = iota
	gray
	black
)

// dfsFrame is one entry of the explicit DFS stack.
type dfsFrame struct {
	id    string
	edges []domain.Edge
	next  int
}

// findCycles walks the graph depth-first with an explicit stack and returns
// every distinct cycle closed by a back edge, in discovery order. Each cycle
// lists its nodes in path order. Nodes and edges are visited in sorted order,
// so the result is deterministic.
func findCycles(g *graph) [][]string {
	colors := make(map[string]color, len(g.ids))
	onStack := make(map[string]int, len(g.ids))
	seen := make(map[string]bool)
	var cycles [][]string

	existing := func(id string) []domain.Edge {
		var out []domain.Edge
		for _, e := range g.outgoing[id] {
			if g.exists(e.Target) {
				out = append(out, e)
			}
		}
		return out
	}

	for _, root := range g.ids {
		if colors[root] != white {
			continue
		}
		stack := []*dfsFrame{{id: root, edges: existing(root)}}
		colors[root] = gray
		onStack[root] = 0

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next >= len(top.edges) {
				colors[top.id] = black
				delete(onStack, top.id)
				stack = stack[:len(stack)-1]
				continue
			}
			e := top.edges[top.next]
			top.next++

			switch colors[e.Target] {
			case white:
				colors[e.Target] = gray
				onStack[e.Target] = len(stack)
				stack = append(stack, &dfsFrame{id: e.Target, edges: existing(e.Target)})
			case gray:
				start := onStack[e.Target]
				path := make([]string, 0, len(stack)-start)
				for _, f := range stack[start:] {
					path = append(path, f.id)
				}
				key := cycleKey(path)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, path)
				}
			}
		}
	}
	return cycles
}

func cycleKey(path []string) string {
	sorted := slices.Clone(path)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x00")
}

// hasExit reports whether any node on the cycle has an edge to an existing
// node outside it.
func hasExit(g *graph, cycle []string) bool {
	members := make(map[string]bool, len(cycle))
	for _, id := range cycle {
		members[id] = true
	}
	for _, id := range cycle {
		for _, e := range g.outgoing[id] {
			if !members[e.Target] && g.exists(e.Target) {
				return true
			}
		}
	}
	return false
}

func checkCycles(g *graph, r *reporter) {
	for _, cycle := range findCycles(g) {
		anchor := slices.Min(cycle)
		loop := strings.Join(append(slices.Clone(cycle), cycle[0]), " -> ")
		details := map[string]any{"cycle": cycle, "length": len(cycle)}

		if hasExit(g, cycle) {
			r.add(domain.IssueCycleDetected, domain.SeverityInfo, domain.CategoryCycle, anchor,
				fmt.Sprintf("cycle %s", loop), details)
			continue
		}
		r.add(domain.IssueNonTerminatingCycle, domain.SeverityWarning, domain.CategoryCycle, anchor,
			fmt.Sprintf("cycle %s has no way out", loop), details)
	}
}
