package dsl

import "github.com/aretw0/fable/pkg/domain"

// PassageBuilder configures a passage.
type PassageBuilder struct {
	node *domain.Passage
}

func (p *PassageBuilder) build() domain.Node { return p.node }

// Text sets the narrative content.
func (p *PassageBuilder) Text(content string) *PassageBuilder {
	p.node.Content = content
	return p
}

// Start marks the passage as the story entry point.
func (p *PassageBuilder) Start() *PassageBuilder {
	p.node.Start = true
	return p
}

// Ending marks the passage as a deliberate ending.
func (p *PassageBuilder) Ending() *PassageBuilder {
	p.node.Ending = true
	return p
}

// Go adds an always-visible choice.
func (p *PassageBuilder) Go(text, target string) *PassageBuilder {
	p.node.Choices = append(p.node.Choices, domain.Choice{Text: text, Target: target})
	return p
}

// GoIf adds a choice shown only while condition holds.
func (p *PassageBuilder) GoIf(condition, text, target string) *PassageBuilder {
	p.node.Choices = append(p.node.Choices, domain.Choice{Text: text, Target: target, Condition: condition})
	return p
}

// At sets the editor position.
func (p *PassageBuilder) At(x, y float64) *PassageBuilder {
	p.node.Position = &domain.Position{X: x, Y: y}
	return p
}

// ChoiceBuilder configures a bare choice node.
type ChoiceBuilder struct {
	node *domain.ChoiceNode
}

func (c *ChoiceBuilder) build() domain.Node {
	if c.node.Choices == nil {
		c.node.Choices = []domain.Choice{}
	}
	return c.node
}

// Prompt sets the text shown above the options.
func (c *ChoiceBuilder) Prompt(text string) *ChoiceBuilder {
	c.node.Prompt = text
	return c
}

// Go adds an always-visible option.
func (c *ChoiceBuilder) Go(text, target string) *ChoiceBuilder {
	c.node.Choices = append(c.node.Choices, domain.Choice{Text: text, Target: target})
	return c
}

// GoIf adds an option shown only while condition holds.
func (c *ChoiceBuilder) GoIf(condition, text, target string) *ChoiceBuilder {
	c.node.Choices = append(c.node.Choices, domain.Choice{Text: text, Target: target, Condition: condition})
	return c
}

// ConditionBuilder configures a branch.
type ConditionBuilder struct {
	node *domain.Condition
}

func (c *ConditionBuilder) build() domain.Node { return c.node }

// Then sets the node taken when the expression is truthy.
func (c *ConditionBuilder) Then(target string) *ConditionBuilder {
	c.node.IfTrue = target
	return c
}

// Else sets the node taken otherwise.
func (c *ConditionBuilder) Else(target string) *ConditionBuilder {
	c.node.IfFalse = target
	return c
}

// VariableBuilder configures a state mutation.
type VariableBuilder struct {
	node *domain.Variable
}

func (v *VariableBuilder) build() domain.Node { return v.node }

// Set assigns a value.
func (v *VariableBuilder) Set(name string, value any) *VariableBuilder {
	if v.node.Set == nil {
		v.node.Set = make(map[string]any)
	}
	if normalized, err := Scalar(value); err == nil {
		value = normalized
	}
	v.node.Set[name] = value
	return v
}

// Inc adds by to a numeric variable.
func (v *VariableBuilder) Inc(name string, by float64) *VariableBuilder {
	if v.node.Increment == nil {
		v.node.Increment = make(map[string]float64)
	}
	v.node.Increment[name] = by
	return v
}

// Dec subtracts by from a numeric variable.
func (v *VariableBuilder) Dec(name string, by float64) *VariableBuilder {
	if v.node.Decrement == nil {
		v.node.Decrement = make(map[string]float64)
	}
	v.node.Decrement[name] = by
	return v
}

// Next sets the node that follows the mutation.
func (v *VariableBuilder) Next(target string) *VariableBuilder {
	v.node.Next = target
	return v
}

// IncludeBuilder configures a sub-flow jump.
type IncludeBuilder struct {
	node *domain.Include
}

func (i *IncludeBuilder) build() domain.Node { return i.node }

// Entry sets the node the sub-flow starts at (default: the story start).
func (i *IncludeBuilder) Entry(id string) *IncludeBuilder {
	i.node.Entry = id
	return i
}

// Return sets the node play resumes at once the sub-flow ends.
func (i *IncludeBuilder) Return(id string) *IncludeBuilder {
	i.node.Return = id
	return i
}

type commentBuilder struct {
	node *domain.Comment
}

func (c *commentBuilder) build() domain.Node { return c.node }
