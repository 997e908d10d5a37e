package core

import (
	"encoding/json"
	"fmt"
	"io"
)

// Attachment is a named CSV source supplied by the content tree.
// Filename is matched by substring against kind tokens; Open must return
// a fresh reader each call.
type Attachment interface {
	Filename() string
	Open() (io.ReadCloser, error)
}

// Row is one CSV record keyed by the header's field names.
// Fields missing from a short line are absent, not empty.
type Row map[string]string

// Has reports whether the field is present and non-empty.
func (r Row) Has(field string) bool {
	return r[field] != ""
}

// TableKind tags a Table as plain or grouped.
type TableKind int

const (
	KindPlain TableKind = iota
	KindGrouped
)

// String returns "plain" or "grouped".
func (k TableKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindGrouped:
		return "grouped"
	default:
		return fmt.Sprintf("TableKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TableKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Group is one category of a grouped table.
type Group struct {
	Category string `json:"category" yaml:"category"`
	Rows     []Row  `json:"rows" yaml:"rows"`
}

// Table is a titled, ordered set of rows. Groups is only set when
// Kind is KindGrouped; Rows always holds every parsed row.
type Table struct {
	Title  string
	Kind   TableKind
	Rows   []Row
	Groups []Group
}

// Organized reports whether the rows were partitioned into groups.
func (t *Table) Organized() bool {
	return t.Kind == KindGrouped
}

// Group returns the rows of one category, or nil.
func (t *Table) Group(category string) []Row {
	for _, g := range t.Groups {
		if g.Category == category {
			return g.Rows
		}
	}
	return nil
}

// Categories returns the group names in first-seen order.
func (t *Table) Categories() []string {
	names := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		names[i] = g.Category
	}
	return names
}

// tableJSON is the wire shape shared by the JSON API and the YAML export.
type tableJSON struct {
	Title     string    `json:"title" yaml:"title"`
	Kind      TableKind `json:"kind" yaml:"kind"`
	Organized bool      `json:"organized" yaml:"organized"`
	Rows      []Row     `json:"rows" yaml:"rows"`
	Groups    []Group   `json:"groups,omitempty" yaml:"groups,omitempty"`
}

func (t *Table) export() tableJSON {
	rows := t.Rows
	if rows == nil {
		rows = []Row{}
	}
	return tableJSON{
		Title:     t.Title,
		Kind:      t.Kind,
		Organized: t.Organized(),
		Rows:      rows,
		Groups:    t.Groups,
	}
}

// MarshalJSON encodes the table as {title, kind, organized, rows, groups}.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.export())
}

// MarshalYAML implements yaml.Marshaler with the same shape as MarshalJSON.
func (t *Table) MarshalYAML() (any, error) {
	return t.export(), nil
}

// Flags holds the presence checks templates use to pick table columns.
type Flags struct {
	AbstractsFile bool `json:"hasAbstractsFile" yaml:"hasAbstractsFile"`
	Presentations bool `json:"hasPresentations" yaml:"hasPresentations"`
	Papers        bool `json:"hasPapers" yaml:"hasPapers"`
	Videos        bool `json:"hasVideos" yaml:"hasVideos"`
	Best          bool `json:"hasBest" yaml:"hasBest"`
	Themes        bool `json:"hasThemes" yaml:"hasThemes"`
}

// KindDefinition describes one table kind that can appear in a collection.
type KindDefinition struct {
	Key      string // Unique identifier: "papers"
	Token    string // Filename substring: "papers.csv"
	Title    string // Display title: "Accepted Papers"
	Priority int    // Lower sorts first in a collection
	Organize bool   // Honors the organize flag (topic grouping)
}
