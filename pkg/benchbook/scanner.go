package benchbook

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// FindTagged scans every note under folder and returns the basenames of
// those whose content contains tag, sorted lexicographically ascending.
//
// Matching is case-sensitive literal substring containment, not token
// parsing: a note containing "#OngoingExperimentsArchive" matches the tag
// "#OngoingExperiments". The historical scripts behave this way and queries
// depend on it; see DESIGN.md.
//
// A note whose basename contains any entry of exclude is skipped regardless
// of tag match (used to keep literal template notes out of results).
//
// Pure read: calling it twice against an unchanged store returns identical
// output.
func (s *Service) FindTagged(ctx context.Context, folder, tag string, exclude []string) ([]string, error) {
	infos, err := s.store.List(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", folder, err)
	}

	var names []string
	for _, info := range infos {
		if matchesAny(info.Basename, exclude) {
			continue
		}

		content, err := s.store.Read(ctx, info.Path)
		if err != nil {
			return nil, err
		}

		if strings.Contains(content, tag) {
			names = append(names, info.Basename)
		}
	}

	sort.Strings(names)
	return names, nil
}

func matchesAny(basename string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(basename, p) {
			return true
		}
	}
	return false
}
