package ports

import (
	"context"

	"github.com/aretw0/fable/pkg/domain"
)

// SaveStore defines the interface for keeping save envelopes by name.
// Restoring a save into a playable session is up to the runtime (LoadGame).
type SaveStore interface {
	// Save stores save under name, replacing any previous save of that name.
	Save(ctx context.Context, name string, save domain.SaveData) error

	// Load retrieves the save stored under name.
	// Returns domain.ErrSaveNotFound if there is none.
	Load(ctx context.Context, name string) (domain.SaveData, error)

	// Delete removes the save stored under name. Deleting a missing save is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}
