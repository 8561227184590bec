package runtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/schema"
)

// SaveOptions carries the optional parts of a save envelope.
type SaveOptions struct {
	SaveName string
	Metadata map[string]any
}

// SaveGame wraps a snapshot of state in a versioned envelope.
func (e *Engine) SaveGame(state *domain.State, opts SaveOptions) domain.SaveData {
	storyID := ""
	if state.Story != nil {
		storyID = state.Story.ID
	}
	return domain.SaveData{
		Version:  domain.SaveVersion,
		StoryID:  storyID,
		SavedAt:  e.now().UTC(),
		SaveName: opts.SaveName,
		Snapshot: Snapshot(state),
		Metadata: opts.Metadata,
	}
}

// LoadGame restores a session from save. Checks run in order: format
// version, story ID (when both sides have one), current node, stack return
// nodes. The first failure is returned and no state is built.
func LoadGame(story *domain.Story, save domain.SaveData, opts HydrateOptions) (*domain.State, error) {
	if save.Version != domain.SaveVersion {
		return nil, withDetails(
			newError(domain.CodeSaveVersion, "", "unsupported save version '%s' (want '%s')", save.Version, domain.SaveVersion),
			map[string]any{"version": save.Version},
		)
	}
	if story == nil {
		return nil, newError(domain.CodeInvalidSave, "", "no story to restore into")
	}
	if save.StoryID != "" && story.ID != "" && save.StoryID != story.ID {
		return nil, withDetails(
			newError(domain.CodeStoryMismatch, "", "save belongs to story '%s', not '%s'", save.StoryID, story.ID),
			map[string]any{"saveStoryId": save.StoryID, "storyId": story.ID},
		)
	}
	return Hydrate(story, save.Snapshot, opts)
}

var (
	limitsSchema = schema.Schema{
		"maxAutoSteps":    schema.Int(),
		"maxIncludeDepth": schema.Int(),
		"maxRepeats":      schema.Int(),
	}

	frameSchema = schema.Schema{
		"includeId": schema.String(),
		"returnTo":  schema.Optional(schema.String()),
	}

	snapshotSchema = schema.Schema{
		"currentNodeId": schema.String(),
		"stack":         schema.Slice(schema.Object(frameSchema)),
		"variables":     schema.Map(schema.Scalar()),
		"visited":       schema.Map(schema.Int()),
		"includeDepth":  schema.Int(),
		"limits":        schema.Object(limitsSchema),
	}

	saveSchema = schema.Schema{
		"version":  schema.String(),
		"storyId":  schema.Optional(schema.String()),
		"savedAt":  schema.Custom("timestamp", validTimestamp),
		"saveName": schema.Optional(schema.String()),
		"snapshot": schema.Object(snapshotSchema),
		"metadata": schema.Optional(schema.Object(nil)),
	}
)

func validTimestamp(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected RFC 3339 timestamp, got %T", v)
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		return fmt.Errorf("expected RFC 3339 timestamp: %w", err)
	}
	return nil
}

// SerializeSaveData encodes save as indented JSON.
func SerializeSaveData(save domain.SaveData) ([]byte, error) {
	data, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode save data: %w", err)
	}
	return data, nil
}

// DeserializeSaveData decodes and structurally validates a save envelope.
// Any problem is reported as RT024_INVALID_SAVE; the version itself is
// checked later by LoadGame.
func DeserializeSaveData(data []byte) (domain.SaveData, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.SaveData{}, invalidSave("save data is not valid JSON", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.SaveData{}, invalidSave(fmt.Sprintf("save data must be an object, got %s", jsonKind(raw)), nil)
	}
	if err := schema.Validate(saveSchema, obj); err != nil {
		return domain.SaveData{}, invalidSave("save data is malformed", err)
	}

	var save domain.SaveData
	if err := json.Unmarshal(data, &save); err != nil {
		return domain.SaveData{}, invalidSave("save data could not be decoded", err)
	}
	return save, nil
}

func invalidSave(msg string, cause error) error {
	rtErr := newError(domain.CodeInvalidSave, "", "%s", msg)
	if cause != nil {
		rtErr.Message = fmt.Sprintf("%s: %v", msg, cause)
		rtErr.Err = cause
		if errs := schema.ValidationErrors(cause); len(errs) > 0 {
			problems := make([]string, 0, len(errs))
			for _, e := range errs {
				problems = append(problems, e.Error())
			}
			rtErr.Details = map[string]any{"problems": problems}
		}
	}
	return rtErr
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
