package tables

import "github.com/faa-hf/confsite/internal/core"

// Papers are the only kind grouped by theme or track when a page asks
// for an organized listing.
func init() {
	core.RegisterKind(core.KindDefinition{
		Key:      "papers",
		Token:    "papers.csv",
		Title:    "Accepted Papers",
		Priority: 3,
		Organize: true,
	})
}
