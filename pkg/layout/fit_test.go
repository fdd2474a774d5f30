package layout

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/slidegen/slidegen/pkg/template"
)

func TestQuantizeScale(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.2, 1},
		{1.0, 1},
		{0.97, 0.95},
		{0.95, 0.95},
		{0.72, 0.7},
		{0.5, 0.5},
		{0.03, 0.05},
		{0, 0.05},
	}
	for _, tt := range tests {
		if got := quantizeScale(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("quantizeScale(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name string
		text string
		cols int
		want []string
	}{
		{"short", "hello world", 20, []string{"hello world"}},
		{"wraps", "one two three four", 9, []string{"one two", "three", "four"}},
		{"newline preserved", "first\nsecond", 20, []string{"first", "second"}},
		{"long word broken", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty paragraph", "a\n\nb", 10, []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.cols); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %v, want %v", tt.text, tt.cols, got, tt.want)
			}
		})
	}
}

func TestRowCapacityCappedByMaxLines(t *testing.T) {
	fit := template.FitPolicy{MaxLines: 5, MinFontScale: 0.5, LineHeight: 28, CharWidth: 11}

	// Geometry alone would allow far more rows at a smaller scale; MaxLines
	// holds regardless.
	if got := rowCapacity(432, fit, 1); got != 5 {
		t.Errorf("rowCapacity at scale 1 = %d, want 5", got)
	}
	if got := rowCapacity(432, fit, 0.5); got != 5 {
		t.Errorf("rowCapacity at scale 0.5 = %d, want 5", got)
	}

	fit.MaxLines = 0
	if got := rowCapacity(432, fit, 1); got != 15 {
		t.Errorf("uncapped rowCapacity = %d, want 15", got)
	}
}

func TestFitScale(t *testing.T) {
	fit := template.FitPolicy{MinFontScale: 0.5, LineHeight: 28, CharWidth: 11}

	// Three short lines fit a tall slot without shrinking.
	scale, fits := fitScale([]string{"a", "b", "c"}, 960, 432, fit)
	if !fits || scale != 1 {
		t.Errorf("fitScale = (%g, %v), want (1, true)", scale, fits)
	}

	// A slot two lines tall at full scale holds three lines after shrinking.
	scale, fits = fitScale([]string{"a", "b", "c"}, 960, 60, fit)
	if !fits {
		t.Fatal("content should fit after shrinking")
	}
	if scale >= 1 || scale < 0.5 {
		t.Errorf("scale = %g, want within [0.5, 1)", scale)
	}

	// Far too many lines never fit; the minimum scale is reported.
	many := make([]string, 40)
	for i := range many {
		many[i] = "line"
	}
	scale, fits = fitScale(many, 960, 60, fit)
	if fits {
		t.Error("40 lines reported as fitting a 60px slot")
	}
	if math.Abs(scale-0.5) > 1e-9 {
		t.Errorf("overflow scale = %g, want the 0.5 minimum", scale)
	}
}

func TestFitSingleNeverBelowMinimum(t *testing.T) {
	fit := template.FitPolicy{MinFontScale: 0.5, LineHeight: 28, CharWidth: 11}
	long := strings.Repeat("word ", 200)

	if got := fitSingle(long, 300, 28, fit); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("fitSingle = %g, want clamped to 0.5", got)
	}
	if got := fitSingle("Title", 300, 56, fit); got != 1 {
		t.Errorf("fitSingle = %g, want 1", got)
	}
}
