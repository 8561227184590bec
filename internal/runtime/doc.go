// Package runtime interprets stories one frame at a time.
//
// An Engine is stateless: callers own a *domain.State per session and pass
// it to Start and Choose. Each call works on a copy and only commits it when
// play reaches a frame, so a failed call never leaves a half-applied
// transition behind. Snapshot, Hydrate, SaveGame and LoadGame move sessions
// in and out of the versioned save envelope.
package runtime
