package document

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// validID is the pattern every node ID must match.
var validID = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

var documentSchema = schema.Schema{
	"id":        schema.Optional(schema.String()),
	"title":     schema.Optional(schema.String()),
	"variables": schema.Optional(schema.Map(schema.Scalar())),
	"nodes":     schema.Map(schema.Object(nil)),
}

// LoadFile reads a story document from disk. A document without an id takes
// the file name, minus its extension.
func LoadFile(path string) (*domain.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story: %w", err)
	}
	story, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if story.ID == "" {
		story.ID = trimExtension(filepath.Base(path))
	}
	return story, nil
}

// Parse decodes a YAML story document.
func Parse(data []byte) (*domain.Story, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse story yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("story document is empty")
	}
	if err := schema.Validate(documentSchema, raw); err != nil {
		return nil, fmt.Errorf("invalid story document: %w", err)
	}

	var meta storyMetadata
	if err := decodeStrict(raw, &meta); err != nil {
		return nil, fmt.Errorf("invalid story document: %w", err)
	}

	story := domain.NewStory(meta.ID)
	story.Title = meta.Title
	for _, name := range slices.Sorted(maps.Keys(meta.Variables)) {
		value, err := domain.NormalizeScalar(meta.Variables[name])
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		story.Variables[name] = value
	}

	for _, id := range slices.Sorted(maps.Keys(meta.Nodes)) {
		node, err := decodeNode(id, meta.Nodes[id])
		if err != nil {
			return nil, &NodeError{NodeID: id, Err: err}
		}
		story.SetNode(node)
	}
	return story, nil
}

func decodeNode(id string, body map[string]any) (domain.Node, error) {
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("%w: must match %s", domain.ErrInvalidNodeID, validID)
	}

	kind := domain.KindPassage
	if raw, ok := body["type"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("type must be a string, got %T", raw)
		}
		if s != "" {
			kind = domain.NodeKind(s)
		}
	}

	var (
		node domain.Node
		base baseMetadata
		err  error
	)
	switch kind {
	case domain.KindPassage:
		var m passageMetadata
		err = decodeStrict(body, &m)
		base = m.baseMetadata
		node = &domain.Passage{
			Base:    m.base(id),
			Content: m.Content,
			Choices: convertChoices(m.Choices),
			Start:   m.Start,
			Ending:  m.Ending,
		}
	case domain.KindChoice:
		var m choiceNodeMetadata
		err = decodeStrict(body, &m)
		base = m.baseMetadata
		choices := convertChoices(m.Choices)
		if choices == nil {
			choices = []domain.Choice{}
		}
		node = &domain.ChoiceNode{Base: m.base(id), Prompt: m.Prompt, Choices: choices}
	case domain.KindCondition:
		var m conditionMetadata
		err = decodeStrict(body, &m)
		base = m.baseMetadata
		node = &domain.Condition{Base: m.base(id), Expression: m.Expression, IfTrue: m.IfTrue, IfFalse: m.IfFalse}
	case domain.KindVariable:
		var m variableMetadata
		err = decodeStrict(body, &m)
		base = m.baseMetadata
		if err == nil {
			for _, k := range slices.Sorted(maps.Keys(m.Set)) {
				if m.Set[k], err = domain.NormalizeScalar(m.Set[k]); err != nil {
					err = fmt.Errorf("set.%s: %w", k, err)
					break
				}
			}
		}
		node = &domain.Variable{Base: m.base(id), Set: m.Set, Increment: m.Increment, Decrement: m.Decrement, Next: m.Next}
	case domain.KindInclude:
		var m includeMetadata
		err = decodeStrict(body, &m)
		base = m.baseMetadata
		node = &domain.Include{Base: m.base(id), Path: m.Path, Entry: m.Entry, Return: m.Return}
	case domain.KindComment:
		var m commentMetadata
		err = decodeStrict(body, &m)
		base = m.baseMetadata
		node = &domain.Comment{Base: m.base(id), Content: m.Content}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, kind)
	}
	if err != nil {
		return nil, err
	}
	if base.ID != "" && base.ID != id {
		return nil, fmt.Errorf("id %q does not match its key", base.ID)
	}
	return node, nil
}

// decodeStrict decodes a generic map into out, rejecting keys that out
// does not declare.
func decodeStrict(in map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(in)
}

func trimExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
