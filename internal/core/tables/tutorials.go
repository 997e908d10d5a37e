package tables

import "github.com/faa-hf/confsite/internal/core"

func init() {
	core.RegisterKind(core.KindDefinition{
		Key:      "tutorials",
		Token:    "tutorials.csv",
		Title:    "Tutorials",
		Priority: 2,
	})
}
