package benchbook

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/benchbook/pkg/core"
)

// SortKey selects the attribute a query sorts on.
type SortKey int

const (
	SortBasename SortKey = iota
	SortCreated
	SortModified
)

// Field selects a projected column in a query result row.
type Field int

const (
	// FieldBasename projects the note's basename.
	FieldBasename Field = iota
	// FieldLink projects a reconstructed wikilink token, [[basename]].
	FieldLink
	// FieldCreated projects the creation timestamp.
	FieldCreated
	// FieldModified projects the modification timestamp.
	FieldModified
	// FieldMatch projects the first wikilink target found in the note's
	// content (empty when the note links to nothing). Daily entries use
	// this to surface the experiment they reference.
	FieldMatch
)

// Predicate is an optional content-based filter evaluated per note.
type Predicate func(n core.Note) bool

// QuerySpec describes an aggregation query: which notes to consider, how to
// filter them, how to sort, and which columns to project.
type QuerySpec struct {
	// Folder scopes the query to notes whose path starts with this prefix.
	Folder string
	// SourceTag, when set, restricts candidates to notes bearing this tag
	// (same substring semantics as FindTagged).
	SourceTag string
	// ExcludeNameSubstring drops notes whose basename contains it.
	ExcludeNameSubstring string
	// Predicate, when set, is an additional conjunctive filter.
	Predicate Predicate
	// SortKey and Descending order the result. Ties always break by
	// basename ascending, regardless of direction.
	SortKey    SortKey
	Descending bool
	// Fields lists the projected columns in output order. Empty defaults
	// to just the basename.
	Fields []Field
}

// Row is one projected result tuple.
type Row []string

// ReferencesNote returns a Predicate matching notes whose content mentions
// the given note by name (plain or as a wikilink).
func ReferencesNote(name string) Predicate {
	return func(n core.Note) bool {
		return strings.Contains(n.Content, name)
	}
}

var wikiLinkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// timeLayout is the fixed projection format for timestamp columns. Keeping
// it fixed makes re-runs over an unchanged store byte-identical.
const timeLayout = "2006-01-02 15:04:05"

type candidate struct {
	note core.Note
	ts   core.Timestamps
}

// Query evaluates spec over the note collection: tag, exclusion, and
// predicate filters are conjunctive; matching notes are sorted and then
// projected. The full collection is re-read on every call, so the result is
// a pure function of current store state.
func (s *Service) Query(ctx context.Context, spec QuerySpec) ([]Row, error) {
	infos, err := s.store.List(ctx, spec.Folder)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", spec.Folder, err)
	}

	var matched []candidate
	for _, info := range infos {
		if spec.ExcludeNameSubstring != "" && strings.Contains(info.Basename, spec.ExcludeNameSubstring) {
			continue
		}

		content, err := s.store.Read(ctx, info.Path)
		if err != nil {
			return nil, err
		}

		if spec.SourceTag != "" && !strings.Contains(content, spec.SourceTag) {
			continue
		}

		note := core.Note{
			Path:     info.Path,
			Basename: info.Basename,
			Content:  content,
		}

		if spec.Predicate != nil && !spec.Predicate(note) {
			continue
		}

		ts, err := s.store.Stat(ctx, info.Path)
		if err != nil {
			return nil, err
		}

		matched = append(matched, candidate{note: note, ts: ts})
	}

	sortCandidates(matched, spec.SortKey, spec.Descending)

	fields := spec.Fields
	if len(fields) == 0 {
		fields = []Field{FieldBasename}
	}

	rows := make([]Row, 0, len(matched))
	for _, c := range matched {
		rows = append(rows, project(c, fields))
	}
	return rows, nil
}

func sortCandidates(cs []candidate, key SortKey, descending bool) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]

		var less, equal bool
		switch key {
		case SortCreated:
			less, equal = a.ts.Created.Before(b.ts.Created), a.ts.Created.Equal(b.ts.Created)
		case SortModified:
			less, equal = a.ts.Modified.Before(b.ts.Modified), a.ts.Modified.Equal(b.ts.Modified)
		default:
			less, equal = a.note.Basename < b.note.Basename, a.note.Basename == b.note.Basename
		}

		if equal {
			// Tie-break is basename ascending even for descending sorts.
			return a.note.Basename < b.note.Basename
		}
		if descending {
			return !less
		}
		return less
	})
}

func project(c candidate, fields []Field) Row {
	row := make(Row, 0, len(fields))
	for _, f := range fields {
		switch f {
		case FieldLink:
			row = append(row, "[["+c.note.Basename+"]]")
		case FieldCreated:
			row = append(row, c.ts.Created.Format(timeLayout))
		case FieldModified:
			row = append(row, c.ts.Modified.Format(timeLayout))
		case FieldMatch:
			row = append(row, firstLinkTarget(c.note.Content))
		default:
			row = append(row, c.note.Basename)
		}
	}
	return row
}

// firstLinkTarget extracts the target of the first wikilink in content,
// stripping alias and heading suffixes ([[name|alias]], [[name#section]]).
func firstLinkTarget(content string) string {
	m := wikiLinkRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	target := m[1]
	if i := strings.IndexAny(target, "|#"); i >= 0 {
		target = target[:i]
	}
	return strings.TrimSpace(target)
}
