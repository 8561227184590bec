package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/fable"
	"github.com/aretw0/fable/internal/presentation/graph"
)

// RenderGraph returns the Mermaid diagram of a story file. With a save
// path, visited and current nodes are highlighted.
func RenderGraph(ctx context.Context, storyPath, savePath string) (string, error) {
	story, err := fable.LoadStory(storyPath)
	if err != nil {
		return "", fmt.Errorf("error loading story: %w", err)
	}

	var overlay *graph.GraphOverlay
	if savePath != "" {
		store, name := saveSlot(savePath)
		save, err := store.Load(ctx, name)
		if err != nil {
			return "", fmt.Errorf("%s: %w", savePath, err)
		}
		if save.StoryID != "" && save.StoryID != story.ID {
			return "", fmt.Errorf("%s: save belongs to story '%s', not '%s'", savePath, save.StoryID, story.ID)
		}
		overlay = graph.OverlayFromSnapshot(save.Snapshot)
	}

	return graph.GenerateMermaid(story, overlay), nil
}
