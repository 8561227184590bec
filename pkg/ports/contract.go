package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSaveStoreContract runs a suite of tests to verify that a SaveStore
// implementation adheres to the interface contract.
func RunSaveStoreContract(t *testing.T, store SaveStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func(node string) domain.SaveData {
		return domain.SaveData{
			Version:  domain.SaveVersion,
			StoryID:  "contract",
			SavedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			SaveName: name,
			Snapshot: domain.Snapshot{
				CurrentNodeID: node,
				Stack:         []domain.StackFrame{{ReturnTo: "after", IncludeID: "inc"}},
				Variables:     map[string]any{"gold": 3.0, "name": "Ada", "brave": true},
				Visited:       map[string]int{"start": 1, node: 2},
				IncludeDepth:  1,
				Limits:        domain.DefaultLimits(),
			},
			Metadata: map[string]any{"chapter": "one"},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		want := sample("hall")
		require.NoError(t, store.Save(ctx, name, want), "Save should not return error")

		got, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, want.StoryID, got.StoryID)
		assert.True(t, want.SavedAt.Equal(got.SavedAt))
		assert.Equal(t, want.Snapshot, got.Snapshot)
		assert.Equal(t, "one", got.Metadata["chapter"])
	})

	t.Run("Save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample("cellar")))
		got, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "cellar", got.Snapshot.CurrentNodeID)
	})

	t.Run("Loaded saves are independent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample("hall")))
		got, err := store.Load(ctx, name)
		require.NoError(t, err)
		got.Snapshot.Variables["gold"] = 99.0

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 3.0, again.Snapshot.Variables["gold"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSaveNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample("hall")))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSaveNotFound, "Load after Delete should return ErrSaveNotFound")
		assert.NoError(t, store.Delete(ctx, name), "Deleting twice is fine")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id2, sample("hall")))
		require.NoError(t, store.Save(ctx, id1, sample("hall")))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}
