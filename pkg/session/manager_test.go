package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/fable"
	"github.com/aretw0/fable/pkg/adapters/memory"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/dsl"
	"github.com/aretw0/fable/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Save(ctx context.Context, name string, save domain.SaveData) error {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Save(ctx, name, save)
}

func (s SlowStore) Load(ctx context.Context, name string) (domain.SaveData, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Load(ctx, name)
}

func roomsStory() *domain.Story {
	b := dsl.New("rooms")
	b.Passage("hall").Text("A draughty hall.").Start().Go("Go outside", "yard")
	b.Passage("yard").Text("A muddy yard.").Go("Go inside", "hall")
	return b.MustBuild()
}

// step starts a fresh session or walks to the other room.
func step(eng *fable.Engine) func(*domain.State) (*domain.Frame, error) {
	return func(s *domain.State) (*domain.Frame, error) {
		if s.CurrentNodeID == "" {
			return eng.Start(s, "")
		}
		if s.CurrentNodeID == "hall" {
			return eng.Choose(s, "yard")
		}
		return eng.Choose(s, "hall")
	}
}

func TestManager_TurnsAreSerialized(t *testing.T) {
	eng := fable.New()
	mgr := session.NewManager(SlowStore{memory.NewStore()}, eng, roomsStory())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Turn(ctx, "shared", step(eng))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// One start plus nine moves between the rooms; a lost update would
	// show up as missing visits.
	state, err := mgr.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "yard", state.CurrentNodeID)
	assert.Equal(t, 5, state.Visited["hall"])
	assert.Equal(t, 5, state.Visited["yard"])
}

func TestManager_LoadOrNew(t *testing.T) {
	eng := fable.New()
	mgr := session.NewManager(memory.NewStore(), eng, roomsStory())
	ctx := context.Background()

	state, loaded, err := mgr.LoadOrNew(ctx, "fresh")
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Empty(t, state.CurrentNodeID)

	_, err = eng.Start(state, "")
	require.NoError(t, err)
	require.NoError(t, mgr.Save(ctx, "fresh", state))

	again, loaded, err := mgr.LoadOrNew(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "hall", again.CurrentNodeID)
}

func TestManager_TurnFailureKeepsSave(t *testing.T) {
	eng := fable.New()
	mgr := session.NewManager(memory.NewStore(), eng, roomsStory())
	ctx := context.Background()

	_, err := mgr.Turn(ctx, "p1", step(eng))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = mgr.Turn(ctx, "p1", func(s *domain.State) (*domain.Frame, error) {
		if _, err := eng.Choose(s, "yard"); err != nil {
			return nil, err
		}
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	state, err := mgr.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "hall", state.CurrentNodeID, "a failed turn is not saved")
}

func TestManager_UnstartedSessionsAreNotStored(t *testing.T) {
	eng := fable.New()
	mgr := session.NewManager(memory.NewStore(), eng, roomsStory())
	ctx := context.Background()

	_, err := mgr.Turn(ctx, "idle", func(s *domain.State) (*domain.Frame, error) { return nil, nil })
	require.NoError(t, err)

	_, err = mgr.Load(ctx, "idle")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)
}

func TestManager_DeleteAndList(t *testing.T) {
	eng := fable.New()
	mgr := session.NewManager(memory.NewStore(), eng, roomsStory())
	ctx := context.Background()

	for _, name := range []string{"b", "a"} {
		_, err := mgr.Turn(ctx, name, step(eng))
		require.NoError(t, err)
	}
	names, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, mgr.Delete(ctx, "a"))
	names, err = mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestManager_ForeignSave(t *testing.T) {
	eng := fable.New()
	store := memory.NewStore()
	ctx := context.Background()

	other := dsl.New("other")
	other.Passage("start").Text("Another tale entirely.").Start().Ending()
	otherState := eng.NewSession(other.MustBuild())
	_, err := eng.Start(otherState, "")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "slot", eng.SaveGame(otherState, fable.SaveOptions{})))

	mgr := session.NewManager(store, eng, roomsStory())
	_, err = mgr.Load(ctx, "slot")
	require.Error(t, err)
	assert.True(t, domain.IsRuntimeCode(err, domain.CodeStoryMismatch))
}

func TestManager_CancelledContext(t *testing.T) {
	mgr := session.NewManager(memory.NewStore(), fable.New(), roomsStory())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mgr.Load(ctx, "any")
	assert.ErrorIs(t, err, context.Canceled)
}
