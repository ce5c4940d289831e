package core

import "time"

// Metadata represents the flexible key-value pairs in a note's frontmatter.
type Metadata map[string]any

// Note is the central entity of the domain: a persisted text document
// (daily entry, experiment, or milestone) identified by its path.
type Note struct {
	Path     string
	Basename string
	Content  string
	Metadata Metadata
}

// NoteInfo is the lightweight listing view of a note: where it lives and
// what it is called, without its content.
type NoteInfo struct {
	Path     string
	Basename string
}

// Timestamps carries the creation and modification times of a note.
// On filesystems without birth time support Created falls back to Modified.
type Timestamps struct {
	Created  time.Time
	Modified time.Time
}

// EventType represents the type of change observed in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the note store.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}
