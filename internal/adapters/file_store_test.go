package adapters_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/fable/internal/adapters"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure FileStore implements SaveStore
var _ ports.SaveStore = (*adapters.FileStore)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSaveStoreContract(t, adapters.NewFileStore(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := adapters.NewFileStore(dir)
	ctx := context.Background()

	save := domain.SaveData{
		Version:  domain.SaveVersion,
		SavedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Snapshot: domain.Snapshot{CurrentNodeID: "start", Variables: map[string]any{}, Visited: map[string]int{}},
	}
	require.NoError(t, store.Save(ctx, "slot1", save))
	require.NoError(t, store.Save(ctx, "named.json", save))

	assert.FileExists(t, filepath.Join(dir, "slot1.json"))
	assert.FileExists(t, filepath.Join(dir, "named.json"))
	assert.Equal(t, filepath.Join(dir, "slot1.json"), store.Path("slot1"))

	// Stray files are not saves.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.json"), 0o755))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"named", "slot1"}, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "no temporary files are left behind")
}

func TestFileStore_RejectsBadNames(t *testing.T) {
	store := adapters.NewFileStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Save(ctx, name, domain.SaveData{}), name)
		_, err := store.Load(ctx, name)
		assert.Error(t, err, name)
		assert.Error(t, store.Delete(ctx, name), name)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	_, err := adapters.NewFileStore(dir).Load(context.Background(), "broken")
	require.Error(t, err)
	assert.True(t, domain.IsRuntimeCode(err, domain.CodeInvalidSave))
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := adapters.NewFileStore(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNewFileStore_Default(t *testing.T) {
	assert.Equal(t, filepath.Join(".fable", "saves"), adapters.NewFileStore("").BasePath)
}
