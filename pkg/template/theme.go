package template

import "github.com/slidegen/slidegen/pkg/errors"

// NumberStyle selects how section numbers are rendered in number slots.
type NumberStyle string

const (
	// NumberStylePadded renders "01", "02", ...
	NumberStylePadded NumberStyle = "padded"
	// NumberStylePart renders "PART 01", "PART 02", ...
	NumberStylePart NumberStyle = "part"
	// NumberStyleWords renders "PART ONE", "PART TWO", ...
	NumberStyleWords NumberStyle = "words"
)

// Valid reports whether s is a known number style.
func (s NumberStyle) Valid() bool {
	switch s {
	case NumberStylePadded, NumberStylePart, NumberStyleWords:
		return true
	}
	return false
}

// Theme carries the visual identity applied to a generated deck. The engine
// does not interpret colors or fonts itself; they are passed through to slide
// elements for the downstream encoder.
type Theme struct {
	Name        string      `toml:"-"`
	Background  string      `toml:"background"`
	Accent      string      `toml:"accent"`
	TextColor   string      `toml:"text_color"`
	FontFamily  string      `toml:"font_family"`
	NumberStyle NumberStyle `toml:"number_style"`
}

// DefaultTheme is used when a request names no theme.
var DefaultTheme = Theme{
	Name:        "default",
	Background:  "#FFFFFF",
	Accent:      "#2563EB",
	TextColor:   "#111827",
	FontFamily:  "Inter",
	NumberStyle: NumberStylePadded,
}

// Validate checks theme fields for structural problems.
func (t *Theme) Validate() error {
	if t.Name == "" {
		return errors.New(errors.ErrCodeInvalidTheme, "theme name cannot be empty")
	}
	if t.NumberStyle != "" && !t.NumberStyle.Valid() {
		return errors.New(errors.ErrCodeInvalidTheme, "theme %q has unknown number style %q", t.Name, t.NumberStyle)
	}
	return nil
}

// Normalize fills unset fields from the default theme.
func (t *Theme) Normalize() {
	if t.Background == "" {
		t.Background = DefaultTheme.Background
	}
	if t.Accent == "" {
		t.Accent = DefaultTheme.Accent
	}
	if t.TextColor == "" {
		t.TextColor = DefaultTheme.TextColor
	}
	if t.FontFamily == "" {
		t.FontFamily = DefaultTheme.FontFamily
	}
	if t.NumberStyle == "" {
		t.NumberStyle = DefaultTheme.NumberStyle
	}
}
