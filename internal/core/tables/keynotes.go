package tables

import "github.com/faa-hf/confsite/internal/core"

func init() {
	core.RegisterKind(core.KindDefinition{
		Key:      "keynotes",
		Token:    "keynotes.csv",
		Title:    "Keynotes",
		Priority: 1,
	})
}
