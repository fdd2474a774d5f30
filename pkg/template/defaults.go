package template

import "github.com/slidegen/slidegen/pkg/content"

// Default returns the built-in catalog. It mirrors the classic five-page deck
// structure (cover, table of contents, section header, section body, closing)
// plus dedicated image and table layouts, so the engine is usable without any
// catalog file.
func Default() *Store {
	specs := []*Spec{
		{
			Name:  "cover",
			Role:  content.RoleCover,
			Kinds: []content.Kind{content.KindSection},
			Slots: []Slot{
				{Name: "title", Type: SlotTitle, X: 0.08, Y: 0.34, Width: 0.84, Height: 0.2, Z: 1},
				{Name: "subtitle", Type: SlotBody, X: 0.08, Y: 0.56, Width: 0.84, Height: 0.12, Z: 2},
			},
			Fit: FitPolicy{MaxLines: 3, MinFontScale: 0.7},
		},
		{
			Name:  "toc",
			Role:  content.RoleTOC,
			Kinds: []content.Kind{content.KindSection, content.KindTextBlock},
			Slots: []Slot{
				{Name: "title", Type: SlotTitle, X: 0.06, Y: 0.06, Width: 0.88, Height: 0.12, Z: 1},
				{Name: "entries", Type: SlotBody, X: 0.1, Y: 0.24, Width: 0.8, Height: 0.66, Z: 2},
			},
			Fit: FitPolicy{MaxLines: 8, MinFontScale: 0.8},
		},
		{
			Name:  "section-header",
			Role:  content.RoleHeader,
			Kinds: []content.Kind{content.KindSection},
			Slots: []Slot{
				{Name: "number", Type: SlotNumber, X: 0.08, Y: 0.2, Width: 0.3, Height: 0.12, Z: 1},
				{Name: "title", Type: SlotTitle, X: 0.08, Y: 0.38, Width: 0.84, Height: 0.2, Z: 2},
			},
			Fit: FitPolicy{MaxLines: 2, MinFontScale: 0.7},
		},
		{
			// The role-less default for authored sections and their content.
			Name:  "bullet",
			Kinds: []content.Kind{content.KindSection, content.KindTextBlock, content.KindImageRef, content.KindTableRef},
			Slots: []Slot{
				{Name: "title", Type: SlotTitle, X: 0.06, Y: 0.05, Width: 0.88, Height: 0.13, Z: 1},
				{Name: "body", Type: SlotBody, X: 0.06, Y: 0.22, Width: 0.52, Height: 0.72, Z: 2},
				{Name: "media", Type: SlotMedia, X: 0.62, Y: 0.22, Width: 0.32, Height: 0.72, Z: 3},
			},
			Fit: FitPolicy{MaxLines: 10, MinFontScale: 0.5},
		},
		{
			Name:  "image",
			Kinds: []content.Kind{content.KindImageRef},
			Slots: []Slot{
				{Name: "media", Type: SlotMedia, X: 0.1, Y: 0.16, Width: 0.8, Height: 0.72, Z: 1},
			},
			Fit: FitPolicy{MinFontScale: 1.0},
		},
		{
			Name:  "table",
			Kinds: []content.Kind{content.KindTableRef},
			Slots: []Slot{
				{Name: "media", Type: SlotMedia, X: 0.08, Y: 0.18, Width: 0.84, Height: 0.68, Z: 1},
			},
			Fit: FitPolicy{MinFontScale: 1.0},
		},
		{
			Name:  "closing",
			Role:  content.RoleClosing,
			Kinds: []content.Kind{content.KindSection},
			Slots: []Slot{
				{Name: "title", Type: SlotTitle, X: 0.1, Y: 0.4, Width: 0.8, Height: 0.2, Z: 1},
			},
			Fit: FitPolicy{MaxLines: 2, MinFontScale: 0.8},
		},
	}

	catalog, err := NewCatalog(specs)
	if err != nil {
		// The built-in catalog is fixed at compile time; failing to build it
		// is a programming error.
		panic(err)
	}
	return NewStore(catalog, nil)
}
