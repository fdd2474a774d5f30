// Package layout implements the content-to-layout resolution engine: binding
// content nodes to templates and computing concrete slide geometry.
//
// The engine runs in two strictly ordered passes per request:
//
//  1. [Resolve] binds every content node to a template from the catalog,
//     producing a resolved tree.
//  2. [Compute] walks the resolved tree in document order and emits positioned
//     slides, fitting text by shrinking the font scale in quantized steps and
//     splitting overflowing sections into continuation slides.
//
// Both passes are pure: they read the shared, immutable template catalog and
// mutate only the per-request [Context]. Any number of requests may run
// concurrently as long as each owns its own Context and content tree.
package layout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/slidegen/slidegen/pkg/template"
)

// Context carries per-request state through the resolution and layout passes:
// the selected theme and locale plus the running slide and section counters.
//
// A Context is constructed once per request and must not be shared across
// concurrent requests. Counters advance only through methods on the instance,
// so independent requests can never interfere.
type Context struct {
	requestID string
	theme     template.Theme
	locale    string

	slideNum   int
	sectionNum int
}

// NewContext creates a fresh per-request context. An empty locale defaults to
// "en".
func NewContext(theme template.Theme, locale string) *Context {
	if locale == "" {
		locale = "en"
	}
	return &Context{
		requestID: uuid.NewString(),
		theme:     theme,
		locale:    locale,
	}
}

// RequestID returns the unique ID assigned to this request, used for log
// correlation and deck storage.
func (c *Context) RequestID() string { return c.requestID }

// Theme returns the theme selected for this request.
func (c *Context) Theme() template.Theme { return c.theme }

// Locale returns the request locale.
func (c *Context) Locale() string { return c.locale }

// NextSlide advances the slide counter and returns the new 1-based number.
func (c *Context) NextSlide() int {
	c.slideNum++
	return c.slideNum
}

// SlideCount returns the number of slides emitted so far.
func (c *Context) SlideCount() int { return c.slideNum }

// NextSection advances the section counter and returns the new 1-based
// number. Only sections whose template carries a number slot consume one.
func (c *Context) NextSection() int {
	c.sectionNum++
	return c.sectionNum
}

// SectionLabel formats a section number according to the theme's number
// style: "01", "PART 01" or "PART ONE".
func (c *Context) SectionLabel(n int) string {
	switch c.theme.NumberStyle {
	case template.NumberStylePart:
		return fmt.Sprintf("PART %02d", n)
	case template.NumberStyleWords:
		if w := numberWords(n); w != "" {
			return "PART " + w
		}
		return fmt.Sprintf("PART %02d", n)
	default:
		return fmt.Sprintf("%02d", n)
	}
}

var onesWords = []string{"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN",
	"EIGHT", "NINE", "TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN",
	"SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN"}

var tensWords = []string{"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY",
	"SEVENTY", "EIGHTY", "NINETY"}

// numberWords spells out n in uppercase English for 1..99.
// Returns "" outside that range; callers fall back to the padded style.
func numberWords(n int) string {
	if n < 1 || n > 99 {
		return ""
	}
	if n < 20 {
		return onesWords[n]
	}
	var b strings.Builder
	b.WriteString(tensWords[n/10])
	if n%10 != 0 {
		b.WriteString("-")
		b.WriteString(onesWords[n%10])
	}
	return b.String()
}
