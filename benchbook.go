package benchbook

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/benchbook/pkg/adapters/fs"
	bb "github.com/aretw0/benchbook/pkg/benchbook"
	"github.com/aretw0/benchbook/pkg/core"
)

// --- Types ---

// Service is the notebook service facade.
type Service = bb.Service

// QuerySpec describes an aggregation query.
type QuerySpec = bb.QuerySpec

// Row is one projected query result tuple.
type Row = bb.Row

// NoteRef references a created note.
type NoteRef = bb.NoteRef

// Sort keys and projected fields.
const (
	SortBasename = bb.SortBasename
	SortCreated  = bb.SortCreated
	SortModified = bb.SortModified

	FieldBasename = bb.FieldBasename
	FieldLink     = bb.FieldLink
	FieldCreated  = bb.FieldCreated
	FieldModified = bb.FieldModified
	FieldMatch    = bb.FieldMatch
)

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = bb.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return bb.WithLogger(logger)
}

// WithStore allows injecting a custom note store adapter.
func WithStore(store core.Store) Option {
	return bb.WithStore(store)
}

// WithMustExist ensures the notebook directory must already exist.
func WithMustExist(must bool) Option {
	return bb.WithMustExist(must)
}

// WithAutoInit enables automatic creation of the notebook directory.
func WithAutoInit(auto bool) Option {
	return bb.WithAutoInit(auto)
}

// WithTemplatesDir sets the templates folder for the filesystem adapter.
func WithTemplatesDir(dir string) Option {
	return bb.WithTemplatesDir(dir)
}

// --- Factory ---

// Open creates a notebook Service rooted at path, backed by the filesystem
// adapter unless a custom store is injected via WithStore.
func Open(path string, opts ...Option) (*Service, error) {
	o := bb.ParseOptions(opts...)

	store := o.Store
	if store == nil {
		fsStore := fs.New(fs.Config{
			Path:         path,
			TemplatesDir: o.TemplatesDir,
			MustExist:    o.MustExist,
			AutoInit:     o.AutoInit,
			Logger:       o.Logger,
		})
		if err := fsStore.Initialize(context.Background()); err != nil {
			return nil, err
		}
		store = fsStore
	}

	return bb.NewService(store, opts...), nil
}

// --- Operations ---

// NextID computes the next free experiment identifier for a day code.
func NextID(date string, basenames []string) string {
	return bb.NextID(date, basenames)
}

// DateCode formats a time as the identifier day code (e.g. "250614").
func DateCode(t time.Time) string {
	return bb.DateCode(t)
}

// ReferencesNote returns a query predicate matching notes that mention the
// given note by name.
func ReferencesNote(name string) bb.Predicate {
	return bb.ReferencesNote(name)
}
