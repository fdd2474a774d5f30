package layout

import (
	"testing"

	"github.com/slidegen/slidegen/pkg/template"
)

func TestContextCounters(t *testing.T) {
	ctx := NewContext(template.DefaultTheme, "")

	if ctx.Locale() != "en" {
		t.Errorf("default locale = %q, want en", ctx.Locale())
	}
	if ctx.RequestID() == "" {
		t.Error("request ID is empty")
	}
	for want := 1; want <= 3; want++ {
		if got := ctx.NextSlide(); got != want {
			t.Errorf("NextSlide = %d, want %d", got, want)
		}
	}
	if ctx.SlideCount() != 3 {
		t.Errorf("SlideCount = %d, want 3", ctx.SlideCount())
	}
	if got := ctx.NextSection(); got != 1 {
		t.Errorf("NextSection = %d, want 1", got)
	}
}

func TestContextsAreIndependent(t *testing.T) {
	a := NewContext(template.DefaultTheme, "en")
	b := NewContext(template.DefaultTheme, "en")

	a.NextSlide()
	a.NextSlide()
	if got := b.NextSlide(); got != 1 {
		t.Errorf("second context NextSlide = %d, want 1", got)
	}
	if a.RequestID() == b.RequestID() {
		t.Error("contexts share a request ID")
	}
}

func TestSectionLabel(t *testing.T) {
	tests := []struct {
		style template.NumberStyle
		n     int
		want  string
	}{
		{template.NumberStylePadded, 1, "01"},
		{template.NumberStylePadded, 12, "12"},
		{template.NumberStylePart, 3, "PART 03"},
		{template.NumberStyleWords, 1, "PART ONE"},
		{template.NumberStyleWords, 15, "PART FIFTEEN"},
		{template.NumberStyleWords, 21, "PART TWENTY-ONE"},
		{template.NumberStyleWords, 40, "PART FORTY"},
		{template.NumberStyleWords, 120, "PART 120"}, // out of word range
	}
	for _, tt := range tests {
		theme := template.DefaultTheme
		theme.NumberStyle = tt.style
		ctx := NewContext(theme, "en")
		if got := ctx.SectionLabel(tt.n); got != tt.want {
			t.Errorf("SectionLabel(%d) with %s = %q, want %q", tt.n, tt.style, got, tt.want)
		}
	}
}

func TestNumberWords(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "ONE"},
		{10, "TEN"},
		{19, "NINETEEN"},
		{20, "TWENTY"},
		{42, "FORTY-TWO"},
		{99, "NINETY-NINE"},
		{0, ""},
		{100, ""},
	}
	for _, tt := range tests {
		if got := numberWords(tt.n); got != tt.want {
			t.Errorf("numberWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
