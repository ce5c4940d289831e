package benchbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/benchbook/pkg/adapters/mem"
	"github.com/aretw0/benchbook/pkg/benchbook"
	"github.com/aretw0/benchbook/pkg/core"
)

func TestQueryTagExclusionAndSort(t *testing.T) {
	// Five candidates bearing the tag, one matching the exclusion: four
	// rows come back, in basename order.
	store := mem.New()
	store.Put("Experiments/E250101B.md", "#ArchivedExperiments", ts(1))
	store.Put("Experiments/E250102A.md", "#ArchivedExperiments", ts(2))
	store.Put("Experiments/E250101A.md", "#ArchivedExperiments", ts(1))
	store.Put("Experiments/experiment-template.md", "#ArchivedExperiments", ts(1))
	store.Put("Experiments/E250103A.md", "#ArchivedExperiments", ts(3))
	store.Put("Experiments/E250104A.md", "not archived", ts(4))

	svc := benchbook.NewService(store)

	rows, err := svc.Query(context.Background(), benchbook.QuerySpec{
		Folder:               "Experiments/",
		SourceTag:            "#ArchivedExperiments",
		ExcludeNameSubstring: "template",
		SortKey:              benchbook.SortBasename,
	})
	require.NoError(t, err)

	assert.Equal(t, []benchbook.Row{
		{"E250101A"},
		{"E250101B"},
		{"E250102A"},
		{"E250103A"},
	}, rows)
}

func TestQuerySortTieBreaksByBasename(t *testing.T) {
	// Equal sort-key values fall back to basename ascending no matter how
	// the store iterates.
	equal := ts(5)
	store := mem.New()
	store.Put("Experiments/E250105C.md", "#Tag", equal)
	store.Put("Experiments/E250105A.md", "#Tag", equal)
	store.Put("Experiments/E250105B.md", "#Tag", equal)

	svc := benchbook.NewService(store)

	for i := 0; i < 5; i++ {
		rows, err := svc.Query(context.Background(), benchbook.QuerySpec{
			Folder:    "Experiments/",
			SourceTag: "#Tag",
			SortKey:   benchbook.SortCreated,
		})
		require.NoError(t, err)
		assert.Equal(t, []benchbook.Row{{"E250105A"}, {"E250105B"}, {"E250105C"}}, rows)
	}
}

func TestQueryDescendingKeepsAscendingTieBreak(t *testing.T) {
	store := mem.New()
	store.Put("Experiments/old.md", "#Tag", ts(1))
	store.Put("Experiments/new.md", "#Tag", ts(9))
	store.Put("Experiments/bbb.md", "#Tag", ts(5))
	store.Put("Experiments/aaa.md", "#Tag", ts(5))

	svc := benchbook.NewService(store)

	rows, err := svc.Query(context.Background(), benchbook.QuerySpec{
		Folder:     "Experiments/",
		SourceTag:  "#Tag",
		SortKey:    benchbook.SortModified,
		Descending: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []benchbook.Row{{"new"}, {"aaa"}, {"bbb"}, {"old"}}, rows)
}

func TestQueryProjection(t *testing.T) {
	when := time.Date(2025, 1, 2, 8, 30, 0, 0, time.UTC)
	store := mem.New()
	store.Put("Daily/2025-01-02.md", "worked on ![[E250102A]] all morning",
		core.Timestamps{Created: when, Modified: when.Add(time.Hour)})

	svc := benchbook.NewService(store)

	rows, err := svc.Query(context.Background(), benchbook.QuerySpec{
		Folder: "Daily/",
		Fields: []benchbook.Field{
			benchbook.FieldBasename,
			benchbook.FieldLink,
			benchbook.FieldCreated,
			benchbook.FieldModified,
			benchbook.FieldMatch,
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, benchbook.Row{
		"2025-01-02",
		"[[2025-01-02]]",
		"2025-01-02 08:30:00",
		"2025-01-02 09:30:00",
		"E250102A",
	}, rows[0])
}

func TestQueryFieldMatchStripsAliasAndHeading(t *testing.T) {
	store := mem.New()
	store.Put("Daily/a.md", "see [[E250101A|the CRISPR run]]", ts(1))
	store.Put("Daily/b.md", "see [[E250101B#Results]]", ts(1))
	store.Put("Daily/c.md", "no links here", ts(1))

	svc := benchbook.NewService(store)

	rows, err := svc.Query(context.Background(), benchbook.QuerySpec{
		Folder: "Daily/",
		Fields: []benchbook.Field{benchbook.FieldBasename, benchbook.FieldMatch},
	})
	require.NoError(t, err)

	assert.Equal(t, []benchbook.Row{
		{"a", "E250101A"},
		{"b", "E250101B"},
		{"c", ""},
	}, rows)
}

func TestQueryPredicateIsConjunctive(t *testing.T) {
	store := mem.New()
	store.Put("Daily/2025-01-01.md", "#OngoingExperiments [[E250101A]]", ts(1))
	store.Put("Daily/2025-01-02.md", "#OngoingExperiments [[E250102A]]", ts(2))
	store.Put("Daily/2025-01-03.md", "untagged [[E250101A]]", ts(3))

	svc := benchbook.NewService(store)

	rows, err := svc.Query(context.Background(), benchbook.QuerySpec{
		Folder:    "Daily/",
		SourceTag: "#OngoingExperiments",
		Predicate: benchbook.ReferencesNote("E250101A"),
	})
	require.NoError(t, err)

	assert.Equal(t, []benchbook.Row{{"2025-01-01"}}, rows)
}

func TestQueryRerunIsByteIdentical(t *testing.T) {
	store := mem.New()
	store.Put("Experiments/E250101A.md", "#Tag [[milestone-cloning]]", ts(1))
	store.Put("Experiments/E250101B.md", "#Tag", ts(2))

	svc := benchbook.NewService(store)
	spec := benchbook.QuerySpec{
		Folder:    "Experiments/",
		SourceTag: "#Tag",
		SortKey:   benchbook.SortCreated,
		Fields: []benchbook.Field{
			benchbook.FieldLink, benchbook.FieldCreated, benchbook.FieldMatch,
		},
	}

	first, err := svc.Query(context.Background(), spec)
	require.NoError(t, err)
	second, err := svc.Query(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
