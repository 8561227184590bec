package domain

import (
	"cmp"
	"slices"
)

// EdgeType classifies a derived edge.
type EdgeType string

const (
	EdgeChoice    EdgeType = "choice"
	EdgeCondition EdgeType = "condition"
	EdgeNext      EdgeType = "next"
	EdgeReturn    EdgeType = "return"
)

// Branch values carried by condition edges.
const (
	BranchTrue  = "true"
	BranchFalse = "false"
)

// Edge is a directed connection derived from a node's fields.
// Edges are never stored; the Story recomputes them after each mutation.
type Edge struct {
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Type      EdgeType `json:"type"`
	Label     string   `json:"label,omitempty"`
	Branch    string   `json:"branch,omitempty"`
	Condition string   `json:"condition,omitempty"`
}

// CompareEdges orders edges by (source, target, type, label, branch).
// Validator output and exports rely on this order being total and stable.
func CompareEdges(a, b Edge) int {
	return cmp.Or(
		cmp.Compare(a.Source, b.Source),
		cmp.Compare(a.Target, b.Target),
		cmp.Compare(a.Type, b.Type),
		cmp.Compare(a.Label, b.Label),
		cmp.Compare(a.Branch, b.Branch),
	)
}

// SortEdges sorts edges in place using CompareEdges.
func SortEdges(edges []Edge) {
	slices.SortStableFunc(edges, CompareEdges)
}
