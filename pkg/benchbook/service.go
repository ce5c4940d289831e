package benchbook

import (
	"context"
	"log/slog"

	"github.com/aretw0/benchbook/pkg/core"
)

// Service ties the notebook operations (identifier sequencing, note
// creation, tag scanning, aggregation queries) to a note store.
//
// The store is an explicit dependency: nothing here reaches for ambient
// state, so the same Service code runs against the filesystem adapter in
// production and the in-memory adapter in tests.
type Service struct {
	store  core.Store
	logger *slog.Logger
}

// NewService creates a Service over the given store.
func NewService(store core.Store, opts ...Option) *Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		store:  store,
		logger: logger,
	}
}

// Store exposes the underlying note store.
func (s *Service) Store() core.Store {
	return s.store
}

// Watch observes changes in the store if the adapter supports it.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w, ok := s.store.(core.Watchable)
	if !ok {
		return nil, core.ErrNotWatchable
	}
	return w.Watch(ctx, pattern)
}
