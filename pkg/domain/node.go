package domain

// NodeKind identifies the variant of a story node.
type NodeKind string

const (
	// KindPassage displays narrative text and waits for the player (hard step).
	KindPassage NodeKind = "passage"
	// KindChoice displays a prompt with options and waits for the player (hard step).
	KindChoice NodeKind = "choice"
	// KindCondition branches on an expression (silent step).
	KindCondition NodeKind = "condition"
	// KindVariable mutates story variables (silent step).
	KindVariable NodeKind = "variable"
	// KindInclude jumps into a sub-flow and returns when it ends (silent step).
	KindInclude NodeKind = "include"
	// KindComment is an author annotation; it is never displayed.
	KindComment NodeKind = "comment"
)

// Position is the editor placement of a node. The engine ignores it.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Choice is an option offered to the player.
// An empty Condition means the option is always visible.
type Choice struct {
	Text      string `json:"text" yaml:"text"`
	Target    string `json:"target" yaml:"target"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Node is a vertex of the story graph.
//
// The set of variants is closed: Passage, ChoiceNode, Condition, Variable,
// Include and Comment. Code that must handle every kind implements
// NodeVisitor, so adding a variant breaks the build until every visitor
// handles it.
type Node interface {
	NodeID() string
	Kind() NodeKind
	// Edges derives the outgoing edges of the node, in declaration order.
	Edges() []Edge
	Accept(v NodeVisitor) error
}

// NodeVisitor dispatches on the concrete node variant.
type NodeVisitor interface {
	VisitPassage(*Passage) error
	VisitChoice(*ChoiceNode) error
	VisitCondition(*Condition) error
	VisitVariable(*Variable) error
	VisitInclude(*Include) error
	VisitComment(*Comment) error
}

// Base holds the fields shared by every node.
type Base struct {
	ID       string    `json:"id" yaml:"id"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty"`
}

// NodeID returns the node identifier.
func (b Base) NodeID() string { return b.ID }

// Passage is a block of narrative text, optionally followed by choices.
type Passage struct {
	Base
	Content string   `json:"content"`
	Choices []Choice `json:"choices,omitempty"`
	Start   bool     `json:"start,omitempty"`
	Ending  bool     `json:"ending,omitempty"`
}

func (n *Passage) Kind() NodeKind             { return KindPassage }
func (n *Passage) Accept(v NodeVisitor) error { return v.VisitPassage(n) }
func (n *Passage) Edges() []Edge              { return choiceEdges(n.ID, n.Choices) }

// ChoiceNode is a bare menu: a prompt and the options under it.
type ChoiceNode struct {
	Base
	Prompt  string   `json:"prompt,omitempty"`
	Choices []Choice `json:"choices"`
}

func (n *ChoiceNode) Kind() NodeKind             { return KindChoice }
func (n *ChoiceNode) Accept(v NodeVisitor) error { return v.VisitChoice(n) }
func (n *ChoiceNode) Edges() []Edge              { return choiceEdges(n.ID, n.Choices) }

// Condition routes to IfTrue or IfFalse depending on Expression.
type Condition struct {
	Base
	Expression string `json:"expression"`
	IfTrue     string `json:"ifTrue"`
	IfFalse    string `json:"ifFalse"`
}

func (n *Condition) Kind() NodeKind             { return KindCondition }
func (n *Condition) Accept(v NodeVisitor) error { return v.VisitCondition(n) }

func (n *Condition) Edges() []Edge {
	return []Edge{
		{Source: n.ID, Target: n.IfTrue, Type: EdgeCondition, Branch: BranchTrue, Condition: n.Expression},
		{Source: n.ID, Target: n.IfFalse, Type: EdgeCondition, Branch: BranchFalse, Condition: n.Expression},
	}
}

// Variable applies Set, then Increment, then Decrement, and moves to Next.
type Variable struct {
	Base
	Set       map[string]any     `json:"set,omitempty"`
	Increment map[string]float64 `json:"increment,omitempty"`
	Decrement map[string]float64 `json:"decrement,omitempty"`
	Next      string             `json:"next,omitempty"`
}

func (n *Variable) Kind() NodeKind             { return KindVariable }
func (n *Variable) Accept(v NodeVisitor) error { return v.VisitVariable(n) }

func (n *Variable) Edges() []Edge {
	if n.Next == "" {
		return nil
	}
	return []Edge{{Source: n.ID, Target: n.Next, Type: EdgeNext}}
}

// Changes reports whether the node mutates anything at all.
func (n *Variable) Changes() bool {
	return len(n.Set)+len(n.Increment)+len(n.Decrement) > 0
}

// Include enters a sub-flow at Entry (or the story start) and resumes at
// Return once that sub-flow reaches an ending.
type Include struct {
	Base
	Path   string `json:"path"`
	Entry  string `json:"entry,omitempty"`
	Return string `json:"return,omitempty"`
}

func (n *Include) Kind() NodeKind             { return KindInclude }
func (n *Include) Accept(v NodeVisitor) error { return v.VisitInclude(n) }

func (n *Include) Edges() []Edge {
	if n.Return == "" {
		return nil
	}
	return []Edge{{Source: n.ID, Target: n.Return, Type: EdgeReturn}}
}

// Comment is an author note attached to the graph.
type Comment struct {
	Base
	Content string `json:"content"`
}

func (n *Comment) Kind() NodeKind             { return KindComment }
func (n *Comment) Accept(v NodeVisitor) error { return v.VisitComment(n) }
func (n *Comment) Edges() []Edge              { return nil }

func choiceEdges(source string, choices []Choice) []Edge {
	if len(choices) == 0 {
		return nil
	}
	edges := make([]Edge, 0, len(choices))
	for _, c := range choices {
		edges = append(edges, Edge{
			Source:    source,
			Target:    c.Target,
			Type:      EdgeChoice,
			Label:     c.Text,
			Condition: c.Condition,
		})
	}
	return edges
}

// ChoicesOf returns the options of a node that offers any, or nil.
func ChoicesOf(n Node) []Choice {
	switch v := n.(type) {
	case *Passage:
		return v.Choices
	case *ChoiceNode:
		return v.Choices
	}
	return nil
}
