package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/fable/internal/logging"
	"github.com/aretw0/fable/internal/runtime"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/ports"
)

// Engine is the part of the fable engine the Manager needs.
type Engine interface {
	NewSession(story *domain.Story) *domain.State
	SaveGame(state *domain.State, opts runtime.SaveOptions) domain.SaveData
	LoadGame(story *domain.Story, save domain.SaveData, opts runtime.HydrateOptions) (*domain.State, error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates access to named sessions of one story.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store  ports.SaveStore
	engine Engine
	story  *domain.Story

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager that plays story with engine and keeps
// sessions in store.
func NewManager(store ports.SaveStore, engine Engine, story *domain.Story, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		engine: engine,
		story:  story,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// WithLock executes fn while holding the lock for name.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Load restores the session saved under name.
// Returns domain.ErrSaveNotFound if there is none.
func (m *Manager) Load(ctx context.Context, name string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		state, err = m.load(ctx, name)
		return err
	})
	return state, err
}

// LoadOrNew restores the session saved under name, or returns a fresh,
// unstarted one. The bool reports whether a save was found.
func (m *Manager) LoadOrNew(ctx context.Context, name string) (*domain.State, bool, error) {
	var (
		state  *domain.State
		loaded bool
	)
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		state, loaded, err = m.loadOrNew(ctx, name)
		return err
	})
	return state, loaded, err
}

// Save stores state under name.
func (m *Manager) Save(ctx context.Context, name string, state *domain.State) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.save(ctx, name, state)
	})
}

// Turn loads (or creates) the session under name, hands it to fn and saves
// it again if fn succeeds, all while holding the session's lock.
// A fresh session is only stored once fn has moved it onto a node.
func (m *Manager) Turn(ctx context.Context, name string, fn func(*domain.State) (*domain.Frame, error)) (*domain.Frame, error) {
	var frame *domain.Frame
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		state, loaded, err := m.loadOrNew(ctx, name)
		if err != nil {
			return err
		}
		frame, err = fn(state)
		if err != nil {
			return err
		}
		if !loaded && state.CurrentNodeID == "" {
			return nil
		}
		return m.save(ctx, name, state)
	})
	return frame, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying save store.
func (m *Manager) Store() ports.SaveStore {
	return m.store
}

func (m *Manager) load(ctx context.Context, name string) (*domain.State, error) {
	save, err := m.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	state, err := m.engine.LoadGame(m.story, save, runtime.HydrateOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to restore session '%s': %w", name, err)
	}
	m.logger.Debug("Session Resumed", "session", name, "node", state.CurrentNodeID)
	return state, nil
}

func (m *Manager) loadOrNew(ctx context.Context, name string) (*domain.State, bool, error) {
	state, err := m.load(ctx, name)
	if err == nil {
		return state, true, nil
	}
	if !errors.Is(err, domain.ErrSaveNotFound) {
		return nil, false, fmt.Errorf("failed to check session existence: %w", err)
	}
	m.logger.Debug("Session Created", "session", name)
	return m.engine.NewSession(m.story), false, nil
}

func (m *Manager) save(ctx context.Context, name string, state *domain.State) error {
	save := m.engine.SaveGame(state, runtime.SaveOptions{SaveName: name})
	if err := m.store.Save(ctx, name, save); err != nil {
		return fmt.Errorf("failed to save session '%s': %w", name, err)
	}
	return nil
}
