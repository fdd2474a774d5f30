package layout

import (
	"math"
	"strings"

	"github.com/slidegen/slidegen/pkg/template"
)

// Text fitting uses a character-capacity model: a slot holds a grid of
// character cells whose size scales with the font scale. The model is
// deliberately font-file free so layout stays deterministic across platforms;
// precise glyph metrics are the encoder's concern.

const (
	// scaleStep is the quantization step for font scaling. Scales move in 5%
	// decrements, bounding the fitting loop to at most 20 iterations.
	scaleStep = 0.05

	// maxFitIterations is a hard cap on fitting iterations. Exceeding it is
	// treated as overflow, never as an infinite loop.
	maxFitIterations = 20
)

// quantizeScale snaps a scale down onto the 5% grid and clamps it to (0, 1].
func quantizeScale(s float64) float64 {
	if s >= 1 {
		return 1
	}
	steps := math.Floor(s/scaleStep + 1e-9)
	q := steps * scaleStep
	if q < scaleStep {
		q = scaleStep
	}
	return q
}

// charsPerLine returns the number of character cells that fit one line of a
// slot of the given pixel width at the given scale. Always at least 1.
func charsPerLine(slotWidth float64, fit template.FitPolicy, scale float64) int {
	n := int(slotWidth / (fit.CharWidth * scale))
	if n < 1 {
		n = 1
	}
	return n
}

// rowCapacity returns the number of text lines a slot of the given pixel
// height holds at the given scale, capped by the policy's MaxLines.
func rowCapacity(slotHeight float64, fit template.FitPolicy, scale float64) int {
	rows := int(slotHeight / (fit.LineHeight * scale))
	if fit.MaxLines > 0 && fit.MaxLines < rows {
		rows = fit.MaxLines
	}
	return rows
}

// wrapText greedily word-wraps text to the given column count. Explicit
// newlines are preserved as line breaks; words longer than a line are broken
// mid-word. The result is never empty for non-empty input.
func wrapText(text string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len(word) > cols {
				// Hard-break oversized words.
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, word[:cols])
				word = word[cols:]
			}
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= cols:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// lineCount returns the number of wrapped lines text occupies at the given
// column count.
func lineCount(text string, cols int) int {
	return len(wrapText(text, cols))
}

// fitScale finds the largest quantized scale in [minScale, 1] at which all
// texts fit the slot, walking down in 5% steps. It returns the chosen scale
// and whether the content fits at that scale; when nothing fits, the returned
// scale is the quantized minimum and fits is false (the caller splits).
func fitScale(texts []string, slotWidth, slotHeight float64, fit template.FitPolicy) (scale float64, fits bool) {
	minScale := quantizeScale(fit.MinFontScale)
	scale = 1.0

	for i := 0; i < maxFitIterations; i++ {
		cols := charsPerLine(slotWidth, fit, scale)
		capacity := rowCapacity(slotHeight, fit, scale)

		total := 0
		for _, t := range texts {
			total += lineCount(t, cols)
		}
		if total <= capacity {
			return scale, true
		}

		next := quantizeScale(scale - scaleStep)
		if next < minScale-1e-9 || next >= scale {
			break
		}
		scale = next
	}
	return scale, false
}

// fitSingle fits one text into a slot, for title and number slots that never
// split. The text is clamped at the minimum scale even if it still overflows
// the row capacity; the frame stays within the slot either way.
func fitSingle(text string, slotWidth, slotHeight float64, fit template.FitPolicy) float64 {
	scale, _ := fitScale([]string{text}, slotWidth, slotHeight, fit)
	return scale
}
