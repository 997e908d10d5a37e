package core

import (
	"log/slog"
	"sort"
	"strings"
)

// SponsorsToken is the filename substring of the sponsors attachment.
const SponsorsToken = "sponsors.csv"

// matchKind returns the kind whose token appears in filename. Kinds are
// tried highest priority first, so papers wins over tutorials and keynotes.
func matchKind(filename string, defs []KindDefinition) (KindDefinition, bool) {
	for i := len(defs) - 1; i >= 0; i-- {
		if strings.Contains(filename, defs[i].Token) {
			return defs[i], true
		}
	}
	return KindDefinition{}, false
}

// LoadCollection builds the ordered tables of one page: keynotes, then
// tutorials, then papers. Attachments matching no kind are ignored. When
// several attachments match the same kind the first one wins.
//
// organize only applies to kinds registered with Organize set. An
// unreadable attachment fails the whole collection.
func LoadCollection(atts []Attachment, organize bool) ([]*Table, error) {
	defs := Kinds()

	type ranked struct {
		priority int
		table    *Table
	}
	var found []ranked
	seen := make(map[string]string)

	for _, att := range atts {
		name := att.Filename()
		def, ok := matchKind(name, defs)
		if !ok {
			continue
		}
		if first, dup := seen[def.Key]; dup {
			slog.Warn("duplicate table attachment ignored",
				"kind", def.Key,
				"used", first,
				"ignored", name,
			)
			continue
		}
		seen[def.Key] = name

		rows, err := Parse(att)
		if err != nil {
			return nil, err
		}
		found = append(found, ranked{
			priority: def.Priority,
			table:    Classify(def.Title, rows, organize && def.Organize),
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].priority < found[j].priority
	})

	tables := make([]*Table, len(found))
	for i, f := range found {
		tables[i] = f.table
	}
	return tables, nil
}

// FindCSV parses the first attachment whose filename contains name.
// Returns false when nothing matches.
func FindCSV(atts []Attachment, name string) ([]Row, bool, error) {
	for _, att := range atts {
		if strings.Contains(att.Filename(), name) {
			rows, err := Parse(att)
			if err != nil {
				return nil, true, err
			}
			return rows, true, nil
		}
	}
	return nil, false, nil
}

// Sponsors returns the rows of the first sponsors attachment, limited to
// one year when year is set; later sponsors attachments are ignored, as
// duplicate kinds are in LoadCollection. No sponsors attachment is not an
// error.
func Sponsors(atts []Attachment, year string) ([]Row, error) {
	rows, ok, err := FindCSV(atts, SponsorsToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Row{}, nil
	}
	if year == "" {
		return rows, nil
	}

	filtered := []Row{}
	for _, row := range rows {
		if v, has := row[FieldYear]; has && strings.TrimSpace(v) == year {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}
