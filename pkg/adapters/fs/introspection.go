package fs

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string `json:"path"`
	TemplatesDir  string `json:"templates_dir"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:          s.Path,
		TemplatesDir:  s.config.TemplatesDir,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
