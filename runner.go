package fable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/runner"
)

// Runner handles an interactive play loop over the provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	// JSON switches to JSON-Lines: one object per frame or message, answers
	// read as JSON strings, {"choice": ...} objects or plain lines.
	JSON     bool
	Renderer ContentRenderer
	// Verbose prints the runtime events that led to each frame.
	Verbose bool
	// EventPrinter formats verbose events. Nil prints one plain line per event.
	EventPrinter func(io.Writer, []domain.Event)
	// OnSave is called when the player types "save". Nil disables the command.
	OnSave func(*domain.State) error
	// MaxInputSize caps a single answer in bytes. Zero means runner.DefaultMaxInputSize.
	MaxInputSize int
	// Handler, when set, replaces the text or JSON handler built from the
	// fields above. Input and Output are then ignored.
	Handler runner.IOHandler
}

// ContentRenderer is a function that transforms passage text before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer = runner.ContentRenderer

// NewRunner creates a Runner reading from in and writing to out.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out}
}

func (r *Runner) handler() (runner.IOHandler, error) {
	if r.Handler != nil {
		return r.Handler, nil
	}
	if r.Input == nil {
		return nil, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if r.JSON {
		return runner.NewJSONHandler(r.Input, r.Output), nil
	}
	h := runner.NewTextHandler(r.Input, r.Output)
	h.Headless = r.Headless
	h.Renderer = r.Renderer
	h.Verbose = r.Verbose
	h.EventPrinter = r.EventPrinter
	return h, nil
}

// Run plays state until an ending, end of input, or "quit".
// An unstarted session is started at entryID (or the start passage); a
// restored one resumes where it was saved.
func (r *Runner) Run(ctx context.Context, engine *Engine, state *domain.State, entryID string) error {
	h, err := r.handler()
	if err != nil {
		return err
	}

	var frame *domain.Frame
	if state.CurrentNodeID == "" {
		frame, err = engine.Start(state, entryID)
	} else {
		frame, err = engine.Current(state)
	}
	if err != nil {
		return err
	}

	fresh := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fresh {
			if err := h.Show(frame); err != nil {
				return err
			}
		}
		if frame.Ending {
			return nil
		}
		if err := h.Choices(frame); err != nil {
			return err
		}

		answer, err := h.Input(ctx)
		if errors.Is(err, io.EOF) {
			// Graceful exit on EOF
			return nil
		}
		if err != nil {
			return err
		}
		fresh = false

		input, err := runner.SanitizeInput(answer, r.MaxInputSize)
		if err != nil {
			if err := h.Problem(fmt.Sprintf("Invalid input: %v", err)); err != nil {
				return err
			}
			continue
		}

		switch input {
		case "":
			continue
		case "quit", "exit":
			return h.Notice("Bye!")
		case "save":
			if err := r.save(h, state); err != nil {
				return err
			}
			continue
		}

		next, err := engine.Choose(state, resolveChoice(frame, input))
		if err != nil {
			if domain.IsRuntimeCode(err, domain.CodeInvalidChoice) {
				if err := h.Problem(fmt.Sprintf("No such choice: %s", input)); err != nil {
					return err
				}
				continue
			}
			return err
		}
		frame, fresh = next, true
	}
}

func (r *Runner) save(h runner.IOHandler, state *domain.State) error {
	if r.OnSave == nil {
		return h.Problem("Saving is not enabled.")
	}
	if err := r.OnSave(state); err != nil {
		return h.Problem(fmt.Sprintf("Save failed: %v", err))
	}
	return h.Notice("Saved.")
}

// resolveChoice maps a 1-based menu number to a choice ID. Anything else
// is passed through as an ID or target.
func resolveChoice(frame *domain.Frame, input string) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(frame.Choices) {
		return frame.Choices[n-1].ID
	}
	return input
}
