package benchbook

import (
	"context"
	"fmt"
	"path"
)

// NoteRef is a reference to a created note, suitable for embedding as a
// wikilink in the calling context.
type NoteRef string

// Link renders the reference as a wikilink token, e.g. [[E250101A]].
func (r NoteRef) Link() string {
	return "[[" + string(r) + "]]"
}

// Embed renders the reference as an embedded wikilink, e.g. ![[E250101A]].
func (r NoteRef) Embed() string {
	return "!" + r.Link()
}

// CreateNote materializes a new note at folder/id from the named template.
// It fails with core.ErrConflict when a note already exists at the target
// path; the store is left unchanged in that case.
func (s *Service) CreateNote(ctx context.Context, templateName, folder, id string) (NoteRef, error) {
	target := path.Join(folder, id)

	if err := s.store.CreateFromTemplate(ctx, templateName, target); err != nil {
		return "", fmt.Errorf("create note %s: %w", target, err)
	}

	s.logger.Debug("note created", "path", target, "template", templateName)
	return NoteRef(id), nil
}

// NewExperiment generates the next free identifier for the given day and
// creates an experiment note with it. This is the end-to-end note-creation
// flow: list existing notes, sequence the identifier, instantiate the
// template.
func (s *Service) NewExperiment(ctx context.Context, folder, templateName, date string) (NoteRef, error) {
	infos, err := s.store.List(ctx, folder)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", folder, err)
	}

	basenames := make([]string, 0, len(infos))
	for _, info := range infos {
		basenames = append(basenames, info.Basename)
	}

	id := NextID(date, basenames)
	return s.CreateNote(ctx, templateName, folder, id)
}
