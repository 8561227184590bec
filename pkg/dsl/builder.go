package dsl

import (
	"fmt"

	"github.com/aretw0/fable/pkg/domain"
)

// Builder manages the story construction.
type Builder struct {
	id        string
	title     string
	variables map[string]any
	order     []string
	nodes     map[string]nodeBuilder
	dupes     []string
}

type nodeBuilder interface {
	build() domain.Node
}

// New creates a new story builder.
func New(storyID string) *Builder {
	return &Builder{
		id:        storyID,
		variables: make(map[string]any),
		nodes:     make(map[string]nodeBuilder),
	}
}

// Title sets the story title.
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Var declares a story variable and its initial value.
// Integers are stored as float64.
func (b *Builder) Var(name string, value any) *Builder {
	b.variables[name] = value
	return b
}

func add[T nodeBuilder](b *Builder, id string, nb T) T {
	if existing, ok := b.nodes[id]; ok {
		if same, ok := existing.(T); ok {
			return same
		}
		b.dupes = append(b.dupes, id)
		return nb
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Passage adds a passage. If one with the same ID exists, its builder is returned.
func (b *Builder) Passage(id string) *PassageBuilder {
	return add(b, id, &PassageBuilder{node: &domain.Passage{Base: domain.Base{ID: id}}})
}

// Choice adds a bare choice node.
func (b *Builder) Choice(id string) *ChoiceBuilder {
	return add(b, id, &ChoiceBuilder{node: &domain.ChoiceNode{Base: domain.Base{ID: id}}})
}

// Condition adds a branch on expression.
func (b *Builder) Condition(id, expression string) *ConditionBuilder {
	return add(b, id, &ConditionBuilder{node: &domain.Condition{Base: domain.Base{ID: id}, Expression: expression}})
}

// Variable adds a state mutation node.
func (b *Builder) Variable(id string) *VariableBuilder {
	return add(b, id, &VariableBuilder{node: &domain.Variable{Base: domain.Base{ID: id}}})
}

// Include adds a sub-flow jump.
func (b *Builder) Include(id, path string) *IncludeBuilder {
	return add(b, id, &IncludeBuilder{node: &domain.Include{Base: domain.Base{ID: id}, Path: path}})
}

// Comment adds an author note.
func (b *Builder) Comment(id, content string) *Builder {
	add(b, id, &commentBuilder{node: &domain.Comment{Base: domain.Base{ID: id}, Content: content}})
	return b
}

// Build assembles the story.
func (b *Builder) Build() (*domain.Story, error) {
	if len(b.dupes) > 0 {
		return nil, fmt.Errorf("node %q declared twice with different kinds", b.dupes[0])
	}

	story := domain.NewStory(b.id)
	story.Title = b.title
	for name, value := range b.variables {
		normalized, err := Scalar(value)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		story.Variables[name] = normalized
	}
	for _, id := range b.order {
		story.SetNode(b.nodes[id].build())
	}
	return story, nil
}

// MustBuild is like Build but panics on error. Intended for tests and examples.
func (b *Builder) MustBuild() *domain.Story {
	story, err := b.Build()
	if err != nil {
		panic(err)
	}
	return story
}

// Scalar normalizes a variable value to string, float64 or bool.
func Scalar(v any) (any, error) {
	return domain.NormalizeScalar(v)
}
