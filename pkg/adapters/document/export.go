package document

import (
	"bytes"
	"fmt"

	"github.com/aretw0/fable/pkg/domain"
	"gopkg.in/yaml.v3"
)

type storyOutput struct {
	ID        string                `yaml:"id,omitempty"`
	Title     string                `yaml:"title,omitempty"`
	Variables map[string]any        `yaml:"variables,omitempty"`
	Nodes     map[string]nodeOutput `yaml:"nodes"`
}

type nodeOutput struct {
	Type       domain.NodeKind    `yaml:"type"`
	Start      bool               `yaml:"start,omitempty"`
	Ending     bool               `yaml:"ending,omitempty"`
	Content    string             `yaml:"content,omitempty"`
	Prompt     string             `yaml:"prompt,omitempty"`
	Choices    []domain.Choice    `yaml:"choices,omitempty"`
	Expression string             `yaml:"expression,omitempty"`
	IfTrue     string             `yaml:"ifTrue,omitempty"`
	IfFalse    string             `yaml:"ifFalse,omitempty"`
	Set        map[string]any     `yaml:"set,omitempty"`
	Increment  map[string]float64 `yaml:"increment,omitempty"`
	Decrement  map[string]float64 `yaml:"decrement,omitempty"`
	Next       string             `yaml:"next,omitempty"`
	Path       string             `yaml:"path,omitempty"`
	Entry      string             `yaml:"entry,omitempty"`
	Return     string             `yaml:"return,omitempty"`
	Position   *domain.Position   `yaml:"position,omitempty"`
}

// Marshal encodes story as a YAML document that Parse reads back.
func Marshal(story *domain.Story) ([]byte, error) {
	out := storyOutput{
		ID:        story.ID,
		Title:     story.Title,
		Variables: story.InitialVariables(),
		Nodes:     make(map[string]nodeOutput, story.Len()),
	}
	for _, n := range story.Nodes() {
		var e exporter
		if err := n.Accept(&e); err != nil {
			return nil, err
		}
		out.Nodes[n.NodeID()] = e.out
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode story: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode story: %w", err)
	}
	return buf.Bytes(), nil
}

type exporter struct {
	out nodeOutput
}

func (e *exporter) VisitPassage(n *domain.Passage) error {
	e.out = nodeOutput{
		Type:     domain.KindPassage,
		Start:    n.Start,
		Ending:   n.Ending,
		Content:  n.Content,
		Choices:  n.Choices,
		Position: n.Position,
	}
	return nil
}

func (e *exporter) VisitChoice(n *domain.ChoiceNode) error {
	e.out = nodeOutput{Type: domain.KindChoice, Prompt: n.Prompt, Choices: n.Choices, Position: n.Position}
	return nil
}

func (e *exporter) VisitCondition(n *domain.Condition) error {
	e.out = nodeOutput{
		Type:       domain.KindCondition,
		Expression: n.Expression,
		IfTrue:     n.IfTrue,
		IfFalse:    n.IfFalse,
		Position:   n.Position,
	}
	return nil
}

func (e *exporter) VisitVariable(n *domain.Variable) error {
	e.out = nodeOutput{
		Type:      domain.KindVariable,
		Set:       n.Set,
		Increment: n.Increment,
		Decrement: n.Decrement,
		Next:      n.Next,
		Position:  n.Position,
	}
	return nil
}

func (e *exporter) VisitInclude(n *domain.Include) error {
	e.out = nodeOutput{Type: domain.KindInclude, Path: n.Path, Entry: n.Entry, Return: n.Return, Position: n.Position}
	return nil
}

func (e *exporter) VisitComment(n *domain.Comment) error {
	e.out = nodeOutput{Type: domain.KindComment, Content: n.Content, Position: n.Position}
	return nil
}
