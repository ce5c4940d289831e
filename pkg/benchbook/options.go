package benchbook

import (
	"log/slog"

	"github.com/aretw0/benchbook/pkg/core"
)

// options holds the internal configuration for the benchbook service.
type options struct {
	store        core.Store
	logger       *slog.Logger
	mustExist    bool
	autoInit     bool
	templatesDir string
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		store:     nil,
		logger:    nil,
		mustExist: false,
		autoInit:  false,
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom note store (e.g. the in-memory
// adapter). If provided, Open skips the default filesystem adapter.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithMustExist ensures the notebook directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithAutoInit enables automatic creation of the notebook directory.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithTemplatesDir sets the templates folder used by the default
// filesystem adapter. Ignored when a custom store is injected.
func WithTemplatesDir(dir string) Option {
	return func(o *options) {
		o.templatesDir = dir
	}
}

// ResolvedOptions is the read-only view of folded options, consumed by the
// root composition facade.
type ResolvedOptions struct {
	Store        core.Store
	Logger       *slog.Logger
	MustExist    bool
	AutoInit     bool
	TemplatesDir string
}

// ParseOptions folds opts into their resolved values.
func ParseOptions(opts ...Option) ResolvedOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return ResolvedOptions{
		Store:        o.store,
		Logger:       o.logger,
		MustExist:    o.mustExist,
		AutoInit:     o.autoInit,
		TemplatesDir: o.templatesDir,
	}
}
