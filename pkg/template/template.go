// Package template defines layout templates and the process-wide catalog.
//
// A template is a named layout rule: which content kinds it accepts, where its
// slots sit on the slide canvas, and how aggressively text may be shrunk to
// fit. Templates are read-only configuration loaded once at startup; requests
// share the catalog without locking.
//
// # Catalog Format
//
// Catalogs are TOML files:
//
//	[templates.bullet]
//	role = "body"
//	kinds = ["section", "text"]
//
//	[templates.bullet.fit]
//	max_lines = 8
//	min_font_scale = 0.6
//
//	[[templates.bullet.slots]]
//	name = "title"
//	type = "title"
//	x = 0.06
//	y = 0.05
//	width = 0.88
//	height = 0.14
//
// Slot geometry is relative to the canvas (0..1 in both axes). See
// [Load] for loading and [Default] for the built-in catalog.
package template

import (
	"sort"

	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/errors"
)

// SlotType identifies what a slot holds.
type SlotType string

const (
	// SlotTitle holds the section or document title.
	SlotTitle SlotType = "title"
	// SlotBody holds flowing text content.
	SlotBody SlotType = "body"
	// SlotMedia holds a single image or table.
	SlotMedia SlotType = "media"
	// SlotNumber holds an auto-generated section number.
	SlotNumber SlotType = "number"
)

// Valid reports whether t is a known slot type.
func (t SlotType) Valid() bool {
	switch t {
	case SlotTitle, SlotBody, SlotMedia, SlotNumber:
		return true
	}
	return false
}

// Slot is a named region of a template, positioned relative to the canvas.
// Coordinates and sizes are fractions in [0, 1].
type Slot struct {
	Name   string   `toml:"name"`
	Type   SlotType `toml:"type"`
	X      float64  `toml:"x"`
	Y      float64  `toml:"y"`
	Width  float64  `toml:"width"`
	Height float64  `toml:"height"`
	// Z is the stacking order; slots are emitted in ascending Z.
	Z int `toml:"z"`
}

// FitPolicy controls text fitting inside body slots.
type FitPolicy struct {
	// MaxLines caps the number of text lines per body slot. Zero means the
	// geometric capacity of the slot is the only limit.
	MaxLines int `toml:"max_lines"`

	// MinFontScale is the smallest permitted font scale in (0, 1].
	// Fitting shrinks text down to this floor before splitting the section
	// into continuation slides.
	MinFontScale float64 `toml:"min_font_scale"`

	// LineHeight is the unscaled height of one text line in canvas units.
	LineHeight float64 `toml:"line_height"`

	// CharWidth is the unscaled average character width in canvas units.
	CharWidth float64 `toml:"char_width"`
}

// Fit policy defaults applied by [Spec.Normalize].
const (
	DefaultMinFontScale = 0.5
	DefaultLineHeight   = 28.0
	DefaultCharWidth    = 11.0
)

// Spec is a single named layout rule. Specs are immutable after catalog
// construction.
type Spec struct {
	Name  string         `toml:"-"`
	Role  string         `toml:"role"`
	Kinds []content.Kind `toml:"kinds"`
	Slots []Slot         `toml:"slots"`
	Fit   FitPolicy      `toml:"fit"`
}

// Allows reports whether the spec accepts content of the given kind.
func (s *Spec) Allows(kind content.Kind) bool {
	for _, k := range s.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Slot returns the first slot of the given type, or nil if the template has
// none.
func (s *Spec) Slot(t SlotType) *Slot {
	for i := range s.Slots {
		if s.Slots[i].Type == t {
			return &s.Slots[i]
		}
	}
	return nil
}

// Normalize applies fit policy defaults and sorts slots by stacking order.
// Called once during catalog construction.
func (s *Spec) Normalize() {
	if s.Fit.MinFontScale <= 0 || s.Fit.MinFontScale > 1 {
		s.Fit.MinFontScale = DefaultMinFontScale
	}
	if s.Fit.LineHeight <= 0 {
		s.Fit.LineHeight = DefaultLineHeight
	}
	if s.Fit.CharWidth <= 0 {
		s.Fit.CharWidth = DefaultCharWidth
	}
	sort.SliceStable(s.Slots, func(i, j int) bool { return s.Slots[i].Z < s.Slots[j].Z })
}

// Validate checks the spec for structural problems: bad names, unknown kinds
// or slot types, and slot geometry outside the canvas.
func (s *Spec) Validate() error {
	if err := errors.ValidateTemplateName(s.Name); err != nil {
		return err
	}
	if len(s.Kinds) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q permits no content kinds", s.Name)
	}
	for _, k := range s.Kinds {
		if !k.Valid() {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q permits unknown kind %q", s.Name, k)
		}
	}
	if len(s.Slots) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q has no slots", s.Name)
	}
	for _, slot := range s.Slots {
		if slot.Name == "" {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q has an unnamed slot", s.Name)
		}
		if !slot.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q slot %q has unknown type %q", s.Name, slot.Name, slot.Type)
		}
		if slot.Width <= 0 || slot.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q slot %q has non-positive size", s.Name, slot.Name)
		}
		if slot.X < 0 || slot.Y < 0 || slot.X+slot.Width > 1 || slot.Y+slot.Height > 1 {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q slot %q exceeds canvas bounds", s.Name, slot.Name)
		}
	}
	if s.Fit.MinFontScale < 0 || s.Fit.MinFontScale > 1 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q min font scale must be in (0, 1]", s.Name)
	}
	return nil
}

// Catalog is the process-wide, read-only template store. It is safe for
// concurrent reads; it is never mutated after construction.
type Catalog struct {
	specs map[string]*Spec
	// names in deterministic order for stable selection.
	names []string
}

// NewCatalog builds a catalog from specs. Every spec is normalized and
// validated; duplicate names are rejected.
func NewCatalog(specs []*Spec) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]*Spec, len(specs))}
	for _, s := range specs {
		s.Normalize()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.specs[s.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate template %q", s.Name)
		}
		c.specs[s.Name] = s
		c.names = append(c.names, s.Name)
	}
	if len(c.specs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog contains no templates")
	}
	sort.Strings(c.names)
	return c, nil
}

// Get returns the template with the given name.
func (c *Catalog) Get(name string) (*Spec, bool) {
	s, ok := c.specs[name]
	return s, ok
}

// Names returns all template names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int { return len(c.specs) }

// Select picks the template for a node. Selection is deterministic:
//
//  1. A template explicitly named by the node's "template" attribute wins,
//     provided it permits the node's kind.
//  2. Otherwise templates whose role matches the node's "role" attribute are
//     preferred over role-less templates.
//  3. Among the remaining candidates, the most specific template wins — the
//     one permitting the fewest kinds. Ties break on name order.
//
// Select returns a NO_TEMPLATE error naming the node when nothing matches.
func (c *Catalog) Select(n *content.Node) (*Spec, error) {
	if name := n.Attr(content.AttrTemplate); name != "" {
		s, ok := c.specs[name]
		if !ok {
			return nil, errors.NewNode(errors.ErrCodeNoTemplate, n.ID(), "template %q not in catalog", name)
		}
		if !s.Allows(n.Kind()) {
			return nil, errors.NewNode(errors.ErrCodeNoTemplate, n.ID(), "template %q does not permit kind %q", name, n.Kind())
		}
		return s, nil
	}

	role := n.Attr(content.AttrRole)
	var best *Spec
	for _, name := range c.names {
		s := c.specs[name]
		if !s.Allows(n.Kind()) {
			continue
		}
		if better(s, best, role) {
			best = s
		}
	}
	if best == nil {
		return nil, errors.NewNode(errors.ErrCodeNoTemplate, n.ID(), "no template permits kind %q", n.Kind())
	}
	return best, nil
}

// better reports whether candidate should replace current for the given role.
func better(candidate, current *Spec, role string) bool {
	if current == nil {
		return true
	}
	candRole := role != "" && candidate.Role == role
	currRole := role != "" && current.Role == role
	if candRole != currRole {
		return candRole
	}
	// Templates with no role beat templates bound to a different role.
	candNeutral := candidate.Role == "" || candidate.Role == role
	currNeutral := current.Role == "" || current.Role == role
	if candNeutral != currNeutral {
		return candNeutral
	}
	if len(candidate.Kinds) != len(current.Kinds) {
		return len(candidate.Kinds) < len(current.Kinds)
	}
	// names iterate in sorted order, so current already wins ties.
	return false
}
