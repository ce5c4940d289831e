// Package index keeps an optional sqlite mirror of the note store.
//
// The store stays authoritative: the index exists so long-running hosts can
// answer identifier counts and tag lookups without re-reading every note,
// and every answer it gives must match what a full rescan would return.
// Rebuild or Recheck can be run at any time to restore that equivalence.
package index

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/aretw0/benchbook/pkg/core"
)

// Index is a sqlite-backed mirror of the note collection.
type Index struct {
	db *sql.DB
}

// Open opens (or creates) the index database at path.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &Index{db: db}, nil
}

// Close releases the database handle.
func (i *Index) Close() error {
	if i.db == nil {
		return nil
	}
	return i.db.Close()
}

// Init applies the schema. A version bump clears the mirror so the next
// Rebuild starts from scratch.
func (i *Index) Init(ctx context.Context) error {
	if _, err := i.db.ExecContext(ctx, schemaSQL); err != nil {
		return err
	}

	version, err := i.currentVersion(ctx)
	if err != nil {
		return err
	}
	if version == schemaVersion {
		return nil
	}

	if _, err := i.db.ExecContext(ctx, "DELETE FROM notes"); err != nil {
		return err
	}
	if _, err := i.db.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err = i.db.ExecContext(ctx, "INSERT INTO schema_version(version) VALUES(?)", schemaVersion)
	return err
}

func (i *Index) currentVersion(ctx context.Context) (int, error) {
	var v int
	err := i.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Rebuild replaces the whole mirror with the current store state for the
// given folders.
func (i *Index) Rebuild(ctx context.Context, store core.Store, folders ...string) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notes"); err != nil {
		return err
	}

	for _, folder := range folders {
		infos, err := store.List(ctx, folder)
		if err != nil {
			return err
		}
		for _, info := range infos {
			if err := upsertNote(ctx, tx, store, info); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Recheck incrementally reconciles the mirror with the store: changed notes
// (by content hash) are updated, new notes inserted, vanished notes removed.
func (i *Index) Recheck(ctx context.Context, store core.Store, folders ...string) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	seen := make(map[string]bool)

	for _, folder := range folders {
		infos, err := store.List(ctx, folder)
		if err != nil {
			return err
		}
		for _, info := range infos {
			seen[info.Path] = true

			content, err := store.Read(ctx, info.Path)
			if err != nil {
				return err
			}

			var existing string
			err = tx.QueryRowContext(ctx, "SELECT hash FROM notes WHERE path = ?", info.Path).Scan(&existing)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			if err == nil && existing == contentHash(content) {
				continue
			}

			if err := upsertNote(ctx, tx, store, info); err != nil {
				return err
			}
		}
	}

	rows, err := tx.QueryContext(ctx, "SELECT path FROM notes")
	if err != nil {
		return err
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return err
		}
		if !seen[p] {
			stale = append(stale, p)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, p := range stale {
		if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE path = ?", p); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func upsertNote(ctx context.Context, tx *sql.Tx, store core.Store, info core.NoteInfo) error {
	content, err := store.Read(ctx, info.Path)
	if err != nil {
		return err
	}
	ts, err := store.Stat(ctx, info.Path)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes(path, basename, content, hash, created_at, modified_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			basename = excluded.basename,
			content = excluded.content,
			hash = excluded.hash,
			created_at = excluded.created_at,
			modified_at = excluded.modified_at`,
		info.Path, info.Basename, content, contentHash(content),
		ts.Created.Unix(), ts.Modified.Unix())
	return err
}

// CountPrefix counts notes under folder whose basename starts with prefix.
// Matches the linear scan the identifier generator performs: an empty folder
// scopes the whole mirror. Uses instr() rather than LIKE because LIKE is
// case-insensitive for ASCII in sqlite and identifier prefixes are
// case-sensitive.
func (i *Index) CountPrefix(ctx context.Context, folder, prefix string) (int, error) {
	var n int
	err := i.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notes
		WHERE (?1 = '' OR instr(path, ?1) = 1) AND instr(basename, ?2) = 1`,
		folder, prefix).Scan(&n)
	return n, err
}

// Tagged returns the basenames of notes under folder whose content contains
// tag, minus basenames matching any exclusion substring, sorted ascending.
// Same semantics as the live tag scanner, including the empty folder meaning
// the whole mirror.
func (i *Index) Tagged(ctx context.Context, folder, tag string, exclude []string) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT basename FROM notes
		WHERE (?1 = '' OR instr(path, ?1) = 1) AND instr(content, ?2) > 0
		ORDER BY basename ASC`,
		folder, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if excludedName(name, exclude) {
			continue
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func excludedName(name string, exclude []string) bool {
	for _, p := range exclude {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
