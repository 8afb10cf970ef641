package playliststore

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"tubelist/internal/services"
)

// List returns the titles of every stored playlist, ordered case-insensitively.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "playliststore", "list", s.dir, err)
	}

	titles := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, documentExt) {
			continue
		}
		titles = append(titles, strings.TrimSuffix(name, documentExt))
	}

	fold := cases.Fold()
	sort.SliceStable(titles, func(i, j int) bool {
		a, b := fold.String(titles[i]), fold.String(titles[j])
		if a != b {
			return a < b
		}
		return titles[i] < titles[j]
	})
	return titles, nil
}
