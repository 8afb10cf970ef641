package main

import (
	"strings"

	"tubelist/internal/services"
)

// parseIDs flattens --ids values, which may be comma or space separated or
// repeated, into a list of non-empty ids in input order. Duplicates are kept;
// the playlist drops them itself.
func parseIDs(values []string) []string {
	ids := make([]string, 0, len(values))
	for _, value := range values {
		for _, field := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		}) {
			if id := strings.TrimSpace(field); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// requireIDs is parseIDs for commands that cannot run without ids.
func requireIDs(values []string) ([]string, error) {
	ids := parseIDs(values)
	if len(ids) == 0 {
		return nil, services.Wrap(services.ErrValidation, "cli", "ids", "at least one video id is required", nil)
	}
	return ids, nil
}
