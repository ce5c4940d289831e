package index_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/benchbook/pkg/adapters/mem"
	"github.com/aretw0/benchbook/pkg/benchbook"
	"github.com/aretw0/benchbook/pkg/core"
	"github.com/aretw0/benchbook/pkg/index"
)

func openIndex(t *testing.T) *index.Index {
	t.Helper()
	idx, err := index.Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	require.NoError(t, idx.Init(context.Background()))
	return idx
}

func ts(day int) core.Timestamps {
	when := time.Date(2025, 1, day, 9, 0, 0, 0, time.UTC)
	return core.Timestamps{Created: when, Modified: when}
}

func TestRebuildAndCountPrefix(t *testing.T) {
	store := mem.New()
	store.Put("Experiments/E250101A.md", "one", ts(1))
	store.Put("Experiments/E250101B.md", "two", ts(1))
	store.Put("Experiments/E250102A.md", "other day", ts(2))
	store.Put("Daily/E250101C.md", "wrong folder", ts(1))

	idx := openIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Rebuild(ctx, store, "Experiments/", "Daily/"))

	n, err := idx.CountPrefix(ctx, "Experiments/", "E250101")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTaggedMatchesLiveScan(t *testing.T) {
	// The index must answer tag queries exactly like a full rescan.
	store := mem.New()
	store.Put("Daily/2025-01-01.md", "#OngoingExperiments first", ts(1))
	store.Put("Daily/2025-01-02.md", "nothing here", ts(2))
	store.Put("Daily/2025-01-03.md", "more #OngoingExperiments", ts(3))
	store.Put("Daily/daily-template.md", "#OngoingExperiments placeholder", ts(1))
	store.Put("Daily/2025-01-04.md", "#ongoingexperiments lowercase", ts(4))

	idx := openIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Rebuild(ctx, store, "Daily/"))

	svc := benchbook.NewService(store)
	exclude := []string{"template"}

	live, err := svc.FindTagged(ctx, "Daily/", "#OngoingExperiments", exclude)
	require.NoError(t, err)

	mirrored, err := idx.Tagged(ctx, "Daily/", "#OngoingExperiments", exclude)
	require.NoError(t, err)

	assert.Equal(t, live, mirrored)
	assert.Equal(t, []string{"2025-01-01", "2025-01-03"}, mirrored)
}

func TestEmptyFolderScopesWholeMirror(t *testing.T) {
	// An empty folder prefix means "everything", same as the live scan.
	store := mem.New()
	store.Put("Daily/2025-01-01.md", "#Tag", ts(1))
	store.Put("Experiments/E250101A.md", "#Tag", ts(1))

	idx := openIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Rebuild(ctx, store, ""))

	svc := benchbook.NewService(store)
	live, err := svc.FindTagged(ctx, "", "#Tag", nil)
	require.NoError(t, err)

	mirrored, err := idx.Tagged(ctx, "", "#Tag", nil)
	require.NoError(t, err)
	assert.Equal(t, live, mirrored)
	assert.Equal(t, []string{"2025-01-01", "E250101A"}, mirrored)

	n, err := idx.CountPrefix(ctx, "", "E250101")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecheckUpdatesChangedNotes(t *testing.T) {
	store := mem.New()
	store.Put("Daily/2025-01-01.md", "no tag yet", ts(1))

	idx := openIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Rebuild(ctx, store, "Daily/"))

	names, err := idx.Tagged(ctx, "Daily/", "#Tag", nil)
	require.NoError(t, err)
	assert.Empty(t, names)

	store.Put("Daily/2025-01-01.md", "now has #Tag", ts(1))
	require.NoError(t, idx.Recheck(ctx, store, "Daily/"))

	names, err = idx.Tagged(ctx, "Daily/", "#Tag", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01"}, names)
}

func TestRecheckRemovesStaleNotes(t *testing.T) {
	storeA := mem.New()
	storeA.Put("Daily/keep.md", "#Tag", ts(1))
	storeA.Put("Daily/gone.md", "#Tag", ts(1))

	idx := openIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Rebuild(ctx, storeA, "Daily/"))

	// Rechecking against a store where one note vanished prunes it.
	storeB := mem.New()
	storeB.Put("Daily/keep.md", "#Tag", ts(1))
	require.NoError(t, idx.Recheck(ctx, storeB, "Daily/"))

	names, err := idx.Tagged(ctx, "Daily/", "#Tag", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, names)
}

func TestRebuildReplacesPreviousState(t *testing.T) {
	storeA := mem.New()
	storeA.Put("Experiments/E250101A.md", "x", ts(1))

	idx := openIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Rebuild(ctx, storeA, "Experiments/"))

	storeB := mem.New()
	storeB.Put("Experiments/E250102A.md", "y", ts(2))
	require.NoError(t, idx.Rebuild(ctx, storeB, "Experiments/"))

	n, err := idx.CountPrefix(ctx, "Experiments/", "E250101")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = idx.CountPrefix(ctx, "Experiments/", "E250102")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
