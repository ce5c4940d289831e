package core

import "context"

// Store defines the contract with the note store: the host that owns the
// note files. Adhering to this interface keeps the bookkeeping logic
// independent of where the notes actually live (filesystem, in-memory
// fake, a remote vault).
//
// The core only ever lists, reads, and creates notes. It never deletes or
// rewrites a note in place.
type Store interface {
	// List returns every note whose path starts with folderPrefix,
	// in unspecified order.
	List(ctx context.Context, folderPrefix string) ([]NoteInfo, error)

	// Read returns the full content of the note at path.
	Read(ctx context.Context, path string) (string, error)

	// CreateFromTemplate materializes a new note at targetPath using the
	// named template's content as the starting body. It must fail with
	// ErrConflict if targetPath already exists, leaving the store unchanged.
	CreateFromTemplate(ctx context.Context, templateName, targetPath string) error

	// Stat returns the creation/modification timestamps of the note at path.
	Stat(ctx context.Context, path string) (Timestamps, error)
}

// Watchable defines an optional capability for stores that can emit change
// events (e.g. the filesystem adapter). Pattern uses doublestar glob syntax.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Initializer defines an optional capability for stores that require setup
// (e.g. create directories) before use.
type Initializer interface {
	Initialize(ctx context.Context) error
}
