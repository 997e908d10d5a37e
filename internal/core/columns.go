package core

import "sort"

// leadingColumns are shown first, in this order, when present.
var leadingColumns = []string{"title", "authors", "speaker", FieldTrack, FieldTheme}

// Columns returns the field names used by rows: the common leading
// columns first, then the rest alphabetically.
func Columns(rows []Row) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}

	cols := make([]string, 0, len(seen))
	for _, k := range leadingColumns {
		if seen[k] {
			cols = append(cols, k)
			delete(seen, k)
		}
	}

	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)

	return append(cols, rest...)
}
