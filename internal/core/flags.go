package core

// anyHas reports whether some row has a non-empty value for one of fields.
func anyHas(rows []Row, fields ...string) bool {
	for _, row := range rows {
		for _, f := range fields {
			if row.Has(f) {
				return true
			}
		}
	}
	return false
}

// HasAbstractsFile reports whether any row links an abstracts file.
func HasAbstractsFile(rows []Row) bool { return anyHas(rows, FieldAbstractsFile) }

// HasPresentations reports whether any row links a presentation.
func HasPresentations(rows []Row) bool { return anyHas(rows, FieldPresentation) }

// HasPapers reports whether any row links a paper.
func HasPapers(rows []Row) bool { return anyHas(rows, FieldPaper) }

// HasVideos reports whether any row links a video.
func HasVideos(rows []Row) bool { return anyHas(rows, FieldVideo) }

// HasBest reports whether any row is marked best.
func HasBest(rows []Row) bool { return anyHas(rows, FieldBest) }

// HasThemes reports whether any row has a track or a theme.
func HasThemes(rows []Row) bool { return anyHas(rows, FieldTrack, FieldTheme) }

// ClassificationFlags runs every presence check over rows.
func ClassificationFlags(rows []Row) Flags {
	return Flags{
		AbstractsFile: HasAbstractsFile(rows),
		Presentations: HasPresentations(rows),
		Papers:        HasPapers(rows),
		Videos:        HasVideos(rows),
		Best:          HasBest(rows),
		Themes:        HasThemes(rows),
	}
}
