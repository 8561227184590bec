package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/fable/pkg/domain"
)

// ContentRenderer transforms passage text before it is printed
// (markdown to ANSI, for instance).
type ContentRenderer func(string) (string, error)

// TextHandler prints frames as text with numbered choices.
type TextHandler struct {
	Writer io.Writer
	// Headless drops the prompt, the menu indent and the end marker,
	// which suits piped input.
	Headless bool
	Renderer ContentRenderer
	// Verbose prints the runtime events that led to each frame.
	Verbose bool
	// EventPrinter formats verbose events. Nil prints one plain line per event.
	EventPrinter func(io.Writer, []domain.Event)

	input *linePump
}

// NewTextHandler creates a handler reading answers from r and printing to w.
func NewTextHandler(r io.Reader, w io.Writer) *TextHandler {
	return &TextHandler{Writer: w, input: newLinePump(r)}
}

// Show prints events (when verbose), the rendered text and the end marker.
func (h *TextHandler) Show(frame *domain.Frame) error {
	if h.Verbose && h.EventPrinter != nil {
		h.EventPrinter(h.Writer, frame.Events)
	} else if h.Verbose {
		for _, ev := range frame.Events {
			fmt.Fprintf(h.Writer, "  · %s: %s\n", ev.Code, ev.Message)
		}
	}
	if frame.Text != "" {
		output := frame.Text
		if h.Renderer != nil {
			if rendered, err := h.Renderer(frame.Text); err == nil {
				output = rendered
			}
		}
		if _, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output)); err != nil {
			return err
		}
	}
	if frame.Ending && !h.Headless {
		_, err := fmt.Fprintln(h.Writer, "-- The End --")
		return err
	}
	return nil
}

// Choices prints a 1-based menu.
func (h *TextHandler) Choices(frame *domain.Frame) error {
	for i, c := range frame.Choices {
		format := "  %d) %s\n"
		if h.Headless {
			format = "%d) %s\n"
		}
		if _, err := fmt.Fprintf(h.Writer, format, i+1, c.Text); err != nil {
			return err
		}
	}
	return nil
}

func (h *TextHandler) Notice(msg string) error {
	_, err := fmt.Fprintln(h.Writer, msg)
	return err
}

func (h *TextHandler) Problem(msg string) error {
	_, err := fmt.Fprintln(h.Writer, msg)
	return err
}

// Input prompts (unless headless) and reads one trimmed line. It returns
// ctx.Err() as soon as ctx ends, even while a read is pending.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !h.Headless {
		fmt.Fprint(h.Writer, "> ")
	}
	return h.input.next(ctx)
}
