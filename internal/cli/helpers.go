package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/fable/internal/config"
	"github.com/aretw0/fable/internal/logging"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It behaves like signal.NotifyContext but remembers which signal fired.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// newLogger builds the process logger. Debug forces the debug level;
// otherwise FABLE_LOG_LEVEL decides.
func newLogger(cfg config.Config, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// profileFor picks a color profile for w. Anything that is not a
// terminal gets plain ASCII.
func profileFor(w io.Writer) termenv.Profile {
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
