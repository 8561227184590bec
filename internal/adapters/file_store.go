package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/fable/internal/runtime"
	"github.com/aretw0/fable/pkg/domain"
)

const saveExt = ".json"

// FileStore implements ports.SaveStore using the local filesystem.
// Each save is one JSON file in BasePath.
type FileStore struct {
	BasePath string
}

// NewFileStore creates a new FileStore with the given base path.
// If basePath is empty, it defaults to ".fable/saves".
func NewFileStore(basePath string) *FileStore {
	if basePath == "" {
		basePath = filepath.Join(".fable", "saves")
	}
	return &FileStore{BasePath: basePath}
}

// Path returns the file that holds name. A name without an extension
// gets ".json".
func (f *FileStore) Path(name string) string {
	if filepath.Ext(name) == "" {
		name += saveExt
	}
	return filepath.Join(f.BasePath, name)
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("save name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("save name %q must not contain a path", name)
	}
	return nil
}

// Save writes the envelope as indented JSON.
func (f *FileStore) Save(ctx context.Context, name string, save domain.SaveData) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(f.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure save directory: %w", err)
	}

	data, err := runtime.SerializeSaveData(save)
	if err != nil {
		return err
	}

	// Save files are replaced atomically.
	path := f.Path(name)
	tmp, err := os.CreateTemp(f.BasePath, ".save-*")
	if err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// Load reads and checks a save file.
func (f *FileStore) Load(ctx context.Context, name string) (domain.SaveData, error) {
	if err := checkName(name); err != nil {
		return domain.SaveData{}, err
	}

	data, err := os.ReadFile(f.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.SaveData{}, domain.ErrSaveNotFound
		}
		return domain.SaveData{}, fmt.Errorf("failed to read save file: %w", err)
	}
	return runtime.DeserializeSaveData(data)
}

// Delete removes the save file.
func (f *FileStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(f.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

// List returns the names of all .json saves in BasePath.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == saveExt {
			names = append(names, strings.TrimSuffix(entry.Name(), saveExt))
		}
	}
	slices.Sort(names)
	return names, nil
}
