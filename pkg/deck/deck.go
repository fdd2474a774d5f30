// Package deck defines the engine's output: a fully resolved, format-agnostic
// slide deck.
//
// A Deck is an ordered sequence of slides, each holding positioned elements
// with absolute canvas coordinates. The deck carries everything a downstream
// encoder needs to produce a concrete presentation file, but commits to no
// file format itself.
//
// Decks serialize to JSON (and BSON for the deck store); see Marshal,
// Unmarshal, WriteJSON and ReadJSON.
package deck

import (
	"time"
)

// Size is a canvas size in user units (typically pixels or EMUs divided down).
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Positive reports whether both dimensions are greater than zero.
func (s Size) Positive() bool { return s.Width > 0 && s.Height > 0 }

// Rect is an absolutely positioned rectangle on the canvas.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// In reports whether r lies entirely within a canvas of the given size.
func (r Rect) In(canvas Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= canvas.Width && r.Bottom() <= canvas.Height
}

// ElementKind identifies what a positioned element holds.
type ElementKind string

const (
	ElementTitle  ElementKind = "title"
	ElementText   ElementKind = "text"
	ElementImage  ElementKind = "image"
	ElementTable  ElementKind = "table"
	ElementNumber ElementKind = "number"
)

// Element is a single positioned item on a slide.
type Element struct {
	Kind   ElementKind `json:"kind" bson:"kind"`
	NodeID string      `json:"node_id,omitempty" bson:"node_id,omitempty"`
	Slot   string      `json:"slot" bson:"slot"`
	Frame  Rect        `json:"frame" bson:"frame"`

	// Text is the rendered text for title/text/number elements.
	Text string `json:"text,omitempty" bson:"text,omitempty"`
	// Ref is the asset reference for image/table elements.
	Ref string `json:"ref,omitempty" bson:"ref,omitempty"`

	// FontScale is the applied font scale in (0, 1] for text-bearing elements.
	FontScale float64 `json:"font_scale,omitempty" bson:"font_scale,omitempty"`

	// Continued marks an element that continues a text block split from the
	// previous slide of the same continuation chain.
	Continued bool `json:"continued,omitempty" bson:"continued,omitempty"`
}

// Slide is one physical slide of the output deck.
type Slide struct {
	// Number is the 1-based position in the deck.
	Number int `json:"number" bson:"number"`

	// Template names the template the slide was laid out with.
	Template string `json:"template" bson:"template"`

	// Role is the slide role inherited from the source section, if any.
	Role string `json:"role,omitempty" bson:"role,omitempty"`

	// SourceSectionID links the slide to the logical section it renders.
	// All slides of one continuation chain share this ID.
	SourceSectionID string `json:"source_section_id" bson:"source_section_id"`

	// ContinuationIndex is 0 for the first slide of a section and increases
	// contiguously for overflow continuations.
	ContinuationIndex int `json:"continuation_index" bson:"continuation_index"`

	Elements []Element `json:"elements" bson:"elements"`
}

// IsContinuation reports whether the slide continues an overflowed section.
func (s *Slide) IsContinuation() bool { return s.ContinuationIndex > 0 }

// ThemeInfo is the theme snapshot embedded in a deck so encoders need no
// access to the catalog configuration.
type ThemeInfo struct {
	Name       string `json:"name" bson:"name"`
	Background string `json:"background,omitempty" bson:"background,omitempty"`
	Accent     string `json:"accent,omitempty" bson:"accent,omitempty"`
	TextColor  string `json:"text_color,omitempty" bson:"text_color,omitempty"`
	FontFamily string `json:"font_family,omitempty" bson:"font_family,omitempty"`
}

// Deck is the engine's final output for one generation request.
type Deck struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Locale    string    `json:"locale,omitempty" bson:"locale,omitempty"`
	Canvas    Size      `json:"canvas" bson:"canvas"`
	Theme     ThemeInfo `json:"theme" bson:"theme"`
	Slides    []Slide   `json:"slides" bson:"slides"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// SlideCount returns the number of slides in the deck.
func (d *Deck) SlideCount() int { return len(d.Slides) }

// Chain returns the slides belonging to the given source section, in
// continuation order.
func (d *Deck) Chain(sectionID string) []Slide {
	var out []Slide
	for _, s := range d.Slides {
		if s.SourceSectionID == sectionID {
			out = append(out, s)
		}
	}
	return out
}
