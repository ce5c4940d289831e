// Package fs implements the note store against a plain directory of
// markdown files, the way the notebook actually lives on disk.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/benchbook/pkg/core"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	// Path is the notebook root directory.
	Path string
	// TemplatesDir is the folder (relative to Path) where templates live.
	// Defaults to "Templates".
	TemplatesDir string
	// MustExist makes Initialize fail when Path is missing.
	MustExist bool
	// AutoInit makes Initialize create Path (and the templates folder).
	AutoInit bool
	// Logger receives debug/warn output. Nil disables logging.
	Logger *slog.Logger
	// ErrorHandler receives asynchronous watcher errors. Nil falls back
	// to the logger.
	ErrorHandler func(error)
}

// Store implements core.Store over a directory tree of .md files.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// New creates a filesystem-backed note store.
func New(config Config) *Store {
	if config.TemplatesDir == "" {
		config.TemplatesDir = "Templates"
	}
	return &Store{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the notebook directory is usable.
func (s *Store) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.Path)
	switch {
	case os.IsNotExist(err):
		if s.config.MustExist {
			return fmt.Errorf("notebook path does not exist: %s", s.Path)
		}
		if !s.config.AutoInit {
			return fmt.Errorf("notebook path does not exist: %s (enable AutoInit to create it)", s.Path)
		}
		if err := os.MkdirAll(filepath.Join(s.Path, s.config.TemplatesDir), 0755); err != nil {
			return fmt.Errorf("failed to create notebook directory: %w", err)
		}
		return nil
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("notebook path is not a directory: %s", s.Path)
	}
	return nil
}

// List returns every .md note whose store path starts with folderPrefix.
// Hidden directories (dotfiles) are skipped. Order is the directory walk
// order; callers that need determinism sort the result themselves.
func (s *Store) List(ctx context.Context, folderPrefix string) ([]core.NoteInfo, error) {
	var infos []core.NoteInfo

	err := filepath.WalkDir(s.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.Path {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != ".md" {
			return nil
		}

		relPath, err := filepath.Rel(s.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if folderPrefix != "" && !strings.HasPrefix(relPath, folderPrefix) {
			return nil
		}

		infos = append(infos, core.NoteInfo{
			Path:     relPath,
			Basename: strings.TrimSuffix(d.Name(), ".md"),
		})
		return nil
	})
	if err != nil {
		return nil, &core.ReadError{Path: s.Path, Err: err}
	}

	return infos, nil
}

// Read returns the content of the note at the given store path.
// The .md extension is optional.
func (s *Store) Read(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return "", &core.ReadError{Path: path, Err: err}
	}
	return string(data), nil
}

// CreateFromTemplate materializes a new note at targetPath from the named
// template. The template is looked up under the templates folder; its body
// is stamped with a uid and creation date before writing.
//
// The write is exclusive: if a note already exists at targetPath the call
// fails with core.ErrConflict and nothing is written.
func (s *Store) CreateFromTemplate(ctx context.Context, templateName, targetPath string) error {
	tmplData, err := os.ReadFile(s.templatePath(templateName))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrTemplateNotFound, templateName)
		}
		return &core.ReadError{Path: templateName, Err: err}
	}

	body, err := core.NewNoteBody(string(tmplData), time.Now())
	if err != nil {
		return fmt.Errorf("prepare note body from template %s: %w", templateName, err)
	}

	fullPath := s.resolve(targetPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return &core.WriteError{Path: targetPath, Err: err}
	}

	if err := createFileExclusive(fullPath, []byte(body), 0644); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", targetPath, core.ErrConflict)
		}
		return &core.WriteError{Path: targetPath, Err: err}
	}

	return nil
}

// Stat returns the note's timestamps. Birth time is not portably available,
// so Created mirrors the modification time; for notebook notes this is
// accurate enough because notes are created once and appended to rarely.
func (s *Store) Stat(ctx context.Context, path string) (core.Timestamps, error) {
	info, err := os.Stat(s.resolve(path))
	if err != nil {
		return core.Timestamps{}, &core.ReadError{Path: path, Err: err}
	}
	return core.Timestamps{
		Created:  info.ModTime(),
		Modified: info.ModTime(),
	}, nil
}

// resolve maps a store path to an absolute filesystem path, appending the
// .md extension when missing.
func (s *Store) resolve(path string) string {
	if filepath.Ext(path) == "" {
		path += ".md"
	}
	return filepath.Join(s.Path, filepath.FromSlash(path))
}

// templatePath resolves a template name inside the templates folder.
func (s *Store) templatePath(name string) string {
	if filepath.Ext(name) == "" {
		name += ".md"
	}
	return filepath.Join(s.Path, s.config.TemplatesDir, name)
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

var _ core.Store = (*Store)(nil)
var _ core.Initializer = (*Store)(nil)
