package core

// Field names the loader inspects. Any other column passes through untouched.
const (
	FieldTrack         = "track"
	FieldTheme         = "theme"
	FieldAbstractsFile = "abstracts_file"
	FieldPresentation  = "presentation"
	FieldPaper         = "paper"
	FieldVideo         = "video"
	FieldBest          = "best"
	FieldYear          = "year"
)

// Classify wraps rows in a Table. The table is grouped only when organize
// is set and at least one row has a theme or track.
func Classify(title string, rows []Row, organize bool) *Table {
	t := &Table{
		Title: title,
		Kind:  KindPlain,
		Rows:  rows,
	}
	if organize && HasThemes(rows) {
		t.Kind = KindGrouped
		t.Groups = groupByCategory(rows)
	}
	return t
}

// category returns the row's theme, falling back to its track.
// Rows with neither belong to no group.
func category(row Row) (string, bool) {
	if v := row[FieldTheme]; v != "" {
		return v, true
	}
	if v := row[FieldTrack]; v != "" {
		return v, true
	}
	return "", false
}

// groupByCategory partitions rows in a single pass. Groups appear in
// first-seen order and keep source order inside; nothing is sorted.
func groupByCategory(rows []Row) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, row := range rows {
		cat, ok := category(row)
		if !ok {
			continue
		}
		i, seen := index[cat]
		if !seen {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}
