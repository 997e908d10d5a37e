package core_test

import (
	"testing"

	"github.com/faa-hf/confsite/internal/core"
)

func TestClassificationFlags(t *testing.T) {
	tests := []struct {
		name string
		rows []core.Row
		want core.Flags
	}{
		{
			name: "no rows",
			rows: nil,
			want: core.Flags{},
		},
		{
			name: "columns present but empty",
			rows: []core.Row{
				{"abstracts_file": "", "presentation": "", "paper": "", "video": "", "best": "", "track": "", "theme": ""},
			},
			want: core.Flags{},
		},
		{
			name: "columns absent",
			rows: []core.Row{{"title": "A"}},
			want: core.Flags{},
		},
		{
			name: "single value anywhere is enough",
			rows: []core.Row{
				{"paper": "", "video": ""},
				{"paper": "p.pdf", "video": ""},
			},
			want: core.Flags{Papers: true},
		},
		{
			name: "track counts as theme",
			rows: []core.Row{{"track": "A"}},
			want: core.Flags{Themes: true},
		},
		{
			name: "everything",
			rows: []core.Row{
				{"abstracts_file": "a.pdf", "presentation": "s.pptx"},
				{"paper": "p.pdf", "video": "v.mp4", "best": "yes", "theme": "AI"},
			},
			want: core.Flags{
				AbstractsFile: true,
				Presentations: true,
				Papers:        true,
				Videos:        true,
				Best:          true,
				Themes:        true,
			},
		},
		{
			name: "whitespace is a value",
			rows: []core.Row{{"best": " "}},
			want: core.Flags{Best: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ClassificationFlags(tt.rows)
			if got != tt.want {
				t.Errorf("ClassificationFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHasPredicatesMatchFlags(t *testing.T) {
	rows := []core.Row{{"abstracts_file": "a", "video": "v"}}
	flags := core.ClassificationFlags(rows)

	checks := []struct {
		name string
		fn   func([]core.Row) bool
		want bool
	}{
		{"HasAbstractsFile", core.HasAbstractsFile, flags.AbstractsFile},
		{"HasPresentations", core.HasPresentations, flags.Presentations},
		{"HasPapers", core.HasPapers, flags.Papers},
		{"HasVideos", core.HasVideos, flags.Videos},
		{"HasBest", core.HasBest, flags.Best},
		{"HasThemes", core.HasThemes, flags.Themes},
	}
	for _, c := range checks {
		if got := c.fn(rows); got != c.want {
			t.Errorf("%s() = %v, want %v", c.name, got, c.want)
		}
	}
}
