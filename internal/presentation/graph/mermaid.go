package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/fable/pkg/domain"
)

// GraphOverlay contains session data to highlight on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFromSnapshot highlights the nodes a saved session has visited and
// the node it is parked on.
func OverlayFromSnapshot(snap domain.Snapshot) *GraphOverlay {
	return &GraphOverlay{
		VisitedNodes: slices.Sorted(maps.Keys(snap.Visited)),
		CurrentNode:  snap.CurrentNodeID,
	}
}

// GenerateMermaid renders a story as a Mermaid flowchart.
// Node shapes follow the kind:
// - Start passage: ((Circle))
// - Ending passage: ([Stadium])
// - Passage: [Rectangle]
// - Choice: [/Parallelogram/]
// - Condition: {Diamond}
// - Variable: [(Cylinder)]
// - Include: [[Subroutine]]
// - Comment: >Flag]
// Targets that do not exist are drawn with the "missing" class.
func GenerateMermaid(story *domain.Story, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	missing := make(map[string]bool)
	for _, node := range story.Nodes() {
		safeID := sanitizeMermaidID(node.NodeID())
		opener, closer := shape(node)
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(node.NodeID()), closer)

		for _, e := range story.Outgoing(node.NodeID()) {
			writeEdge(&sb, safeID, e)
			if e.Target != "" && !story.HasNode(e.Target) {
				missing[e.Target] = true
			}
		}
		if inc, ok := node.(*domain.Include); ok && inc.Entry != "" {
			fmt.Fprintf(&sb, "    %s -. \"entry\" .-> %s\n", safeID, sanitizeMermaidID(inc.Entry))
			if !story.HasNode(inc.Entry) {
				missing[inc.Entry] = true
			}
		}
	}

	if len(missing) > 0 {
		sb.WriteString("\n    classDef missing fill:#ffebee,stroke:#c62828,stroke-dasharray:4 2,color:#000;\n")
		for _, id := range slices.Sorted(maps.Keys(missing)) {
			fmt.Fprintf(&sb, "    %s[\"%s ?\"]:::missing\n", sanitizeMermaidID(id), escapeLabel(id))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" && story.HasNode(id) {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" && story.HasNode(overlay.CurrentNode) {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func shape(node domain.Node) (string, string) {
	switch n := node.(type) {
	case *domain.Passage:
		switch {
		case n.Start:
			return "((", "))"
		case n.Ending:
			return "([", "])"
		}
		return "[", "]"
	case *domain.ChoiceNode:
		return "[/", "/]"
	case *domain.Condition:
		return "{", "}"
	case *domain.Variable:
		return "[(", ")]"
	case *domain.Include:
		return "[[", "]]"
	case *domain.Comment:
		return ">", "]"
	}
	return "[", "]"
}

func writeEdge(sb *strings.Builder, from string, e domain.Edge) {
	if e.Target == "" {
		return
	}
	to := sanitizeMermaidID(e.Target)

	var label string
	switch e.Type {
	case domain.EdgeChoice:
		label = e.Label
		if e.Condition != "" {
			label = fmt.Sprintf("%s [%s]", e.Label, e.Condition)
		}
	case domain.EdgeCondition:
		label = e.Branch
	case domain.EdgeReturn:
		fmt.Fprintf(sb, "    %s -. \"return\" .-> %s\n", from, to)
		return
	}

	if label == "" {
		fmt.Fprintf(sb, "    %s --> %s\n", from, to)
		return
	}
	fmt.Fprintf(sb, "    %s -- \"%s\" --> %s\n", from, escapeLabel(label), to)
}

// escapeLabel keeps labels on one line and free of double quotes.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	// "end" closes subgraphs in Mermaid.
	if strings.EqualFold(s, "end") {
		s += "_"
	}
	return s
}
