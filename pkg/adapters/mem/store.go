// Package mem implements the note store in memory. It backs unit tests and
// any embedding host that keeps its vault in memory.
package mem

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/benchbook/pkg/core"
)

type note struct {
	content string
	ts      core.Timestamps
}

// Store implements core.Store over maps. Safe for concurrent use, although
// the notebook operations themselves are one-at-a-time by design.
type Store struct {
	mu        sync.RWMutex
	notes     map[string]note
	templates map[string]string

	// now is swappable in tests for deterministic created dates.
	now func() time.Time
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		notes:     make(map[string]note),
		templates: make(map[string]string),
		now:       time.Now,
	}
}

// Put inserts or replaces a note, for test fixtures and host embedding.
func (s *Store) Put(path, content string, ts core.Timestamps) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[path] = note{content: content, ts: ts}
}

// PutTemplate registers a named template.
func (s *Store) PutTemplate(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[name] = content
}

// Len returns the number of notes in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// SetClock overrides the time source used when stamping new notes.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// List returns every note whose path starts with folderPrefix. Map
// iteration order leaks through on purpose: callers must not depend on
// store ordering.
func (s *Store) List(ctx context.Context, folderPrefix string) ([]core.NoteInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var infos []core.NoteInfo
	for path := range s.notes {
		if folderPrefix != "" && !strings.HasPrefix(path, folderPrefix) {
			continue
		}
		infos = append(infos, core.NoteInfo{
			Path:     path,
			Basename: basename(path),
		})
	}
	return infos, nil
}

// Read returns the content of the note at path.
func (s *Store) Read(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[path]
	if !ok {
		return "", &core.ReadError{Path: path, Err: fmt.Errorf("not found")}
	}
	return n.content, nil
}

// CreateFromTemplate materializes a new note at targetPath, stamping the
// template body the same way the filesystem adapter does.
func (s *Store) CreateFromTemplate(ctx context.Context, templateName, targetPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrTemplateNotFound, templateName)
	}

	if _, exists := s.notes[targetPath]; exists {
		return fmt.Errorf("%s: %w", targetPath, core.ErrConflict)
	}

	now := s.now()
	body, err := core.NewNoteBody(tmpl, now)
	if err != nil {
		return fmt.Errorf("prepare note body from template %s: %w", templateName, err)
	}

	s.notes[targetPath] = note{
		content: body,
		ts:      core.Timestamps{Created: now, Modified: now},
	}
	return nil
}

// Stat returns the note's timestamps.
func (s *Store) Stat(ctx context.Context, path string) (core.Timestamps, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[path]
	if !ok {
		return core.Timestamps{}, &core.ReadError{Path: path, Err: fmt.Errorf("not found")}
	}
	return n.ts, nil
}

func basename(path string) string {
	name := path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".md")
}

var _ core.Store = (*Store)(nil)
