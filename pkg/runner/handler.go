package runner

import (
	"context"

	"github.com/aretw0/fable/pkg/domain"
)

// IOHandler carries a play session to and from the player.
type IOHandler interface {
	// Show presents a frame's text (and, for endings, whatever closes the story).
	Show(frame *domain.Frame) error
	// Choices presents the options of a frame that waits for the player.
	Choices(frame *domain.Frame) error
	// Notice reports something informational, like a successful save.
	Notice(msg string) error
	// Problem reports a recoverable mistake, like an unknown choice.
	Problem(msg string) error
	// Input blocks for the player's next answer. It returns io.EOF when
	// there will be no more.
	Input(ctx context.Context) (string, error)
}
