package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/fable"
	"github.com/aretw0/fable/internal/adapters"
	"github.com/aretw0/fable/internal/config"
	"github.com/aretw0/fable/internal/presentation/tui"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PlayOptions contains all the configuration for the play command.
type PlayOptions struct {
	StoryPath string
	Entry     string
	// LoadPath resumes from a save file instead of starting fresh.
	LoadPath string
	// SavePath enables the "save" command and receives a save on exit.
	SavePath string
	Plain    bool
	Verbose  bool
	Debug    bool
	// JSON plays over JSON-Lines instead of text menus.
	JSON bool
	// MetricsOut, when set, receives the session's metrics in text format.
	MetricsOut io.Writer
}

// RunPlay loads a story and plays it interactively over in/out.
func RunPlay(ctx context.Context, opts PlayOptions, cfg config.Config, in io.Reader, out io.Writer) error {
	logger, err := newLogger(cfg, opts.Debug)
	if err != nil {
		return err
	}

	story, err := fable.LoadStory(opts.StoryPath)
	if err != nil {
		return fmt.Errorf("error loading story: %w", err)
	}

	setup, err := createEngine(cfg, logger, opts.Debug, opts.MetricsOut != nil)
	if err != nil {
		return err
	}
	engine := setup.engine

	profile := profileFor(out)
	if result := engine.Validate(story); !result.Valid {
		tui.PrintReport(out, profile, opts.StoryPath, result)
		return fmt.Errorf("story has %d errors", result.Counts.Error)
	}

	state := engine.NewSession(story)
	if opts.LoadPath != "" {
		state, err = readSave(ctx, engine, story, cfg.SavePath(opts.LoadPath))
		if err != nil {
			return err
		}
		logger.Info("Session Resumed", "story_id", story.ID, "node", state.CurrentNodeID)
	}

	runner := fable.NewRunner(in, out)
	runner.Headless = !isTerminal(in)
	runner.JSON = opts.JSON
	runner.Verbose = opts.Verbose
	runner.MaxInputSize = cfg.MaxInputSize
	runner.EventPrinter = func(w io.Writer, events []domain.Event) {
		tui.PrintEvents(w, profile, events)
	}
	if !opts.Plain && !opts.JSON && isTerminal(out) {
		tui.PrintBanner(out, profile)
		runner.Renderer = tui.NewRenderer()
	} else {
		runner.Renderer = tui.PlainRenderer
	}

	savePath := ""
	if opts.SavePath != "" {
		savePath = cfg.SavePath(opts.SavePath)
		runner.OnSave = func(s *domain.State) error {
			return writeSave(ctx, engine, s, savePath)
		}
	}

	runErr := runner.Run(ctx, engine, state, opts.Entry)

	if savePath != "" && state.CurrentNodeID != "" {
		if err := writeSave(context.WithoutCancel(ctx), engine, state, savePath); err != nil {
			logger.Error("Failed to write save", "path", savePath, "err", err)
		}
	}
	if setup.registry != nil {
		if err := dumpMetrics(opts.MetricsOut, setup.registry); err != nil {
			logger.Warn("Failed to write metrics", "err", err)
		}
	}

	if isInterrupted(runErr) {
		printSystemMessage(out, "Interrupted at '%s' node.", state.CurrentNodeID)
		return nil
	}
	return runErr
}

// saveSlot splits a save path into the store holding it and its name.
func saveSlot(path string) (*adapters.FileStore, string) {
	return adapters.NewFileStore(filepath.Dir(path)), filepath.Base(path)
}

func readSave(ctx context.Context, engine *fable.Engine, story *domain.Story, path string) (*domain.State, error) {
	store, name := saveSlot(path)
	save, err := store.Load(ctx, name)
	if errors.Is(err, domain.ErrSaveNotFound) {
		return nil, fmt.Errorf("no save at %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	limits := engine.Limits()
	state, err := engine.LoadGame(story, save, fable.HydrateOptions{Limits: &limits})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

func writeSave(ctx context.Context, engine *fable.Engine, state *domain.State, path string) error {
	store, name := saveSlot(path)
	save := engine.SaveGame(state, fable.SaveOptions{SaveName: name})
	return store.Save(ctx, name, save)
}

func dumpMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
