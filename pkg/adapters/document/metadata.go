package document

import "github.com/aretw0/fable/pkg/domain"

// storyMetadata is the top level of a story document.
type storyMetadata struct {
	ID        string                    `mapstructure:"id"`
	Title     string                    `mapstructure:"title"`
	Variables map[string]any            `mapstructure:"variables"`
	Nodes     map[string]map[string]any `mapstructure:"nodes"`
}

type baseMetadata struct {
	ID       string           `mapstructure:"id"`
	Type     string           `mapstructure:"type"`
	Position *domain.Position `mapstructure:"position"`
}

type choiceMetadata struct {
	Text      string `mapstructure:"text"`
	Target    string `mapstructure:"target"`
	Condition string `mapstructure:"condition"`
}

type passageMetadata struct {
	baseMetadata `mapstructure:",squash"`
	Content      string           `mapstructure:"content"`
	Choices      []choiceMetadata `mapstructure:"choices"`
	Start        bool             `mapstructure:"start"`
	Ending       bool             `mapstructure:"ending"`
}

type choiceNodeMetadata struct {
	baseMetadata `mapstructure:",squash"`
	Prompt       string           `mapstructure:"prompt"`
	Choices      []choiceMetadata `mapstructure:"choices"`
}

type conditionMetadata struct {
	baseMetadata `mapstructure:",squash"`
	Expression   string `mapstructure:"expression"`
	IfTrue       string `mapstructure:"ifTrue"`
	IfFalse      string `mapstructure:"ifFalse"`
}

type variableMetadata struct {
	baseMetadata `mapstructure:",squash"`
	Set          map[string]any     `mapstructure:"set"`
	Increment    map[string]float64 `mapstructure:"increment"`
	Decrement    map[string]float64 `mapstructure:"decrement"`
	Next         string             `mapstructure:"next"`
}

type includeMetadata struct {
	baseMetadata `mapstructure:",squash"`
	Path         string `mapstructure:"path"`
	Entry        string `mapstructure:"entry"`
	Return       string `mapstructure:"return"`
}

type commentMetadata struct {
	baseMetadata `mapstructure:",squash"`
	Content      string `mapstructure:"content"`
}

func (m baseMetadata) base(id string) domain.Base {
	return domain.Base{ID: id, Position: m.Position}
}

func convertChoices(in []choiceMetadata) []domain.Choice {
	if in == nil {
		return nil
	}
	out := make([]domain.Choice, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Choice{Text: c.Text, Target: c.Target, Condition: c.Condition})
	}
	return out
}
