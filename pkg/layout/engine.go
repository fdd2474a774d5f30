package layout

import (
	"strconv"

	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/template"
)

// maxContinuations bounds a single section's continuation chain. Reaching it
// means the split loop stopped making progress, which is reported as a cyclic
// reference rather than looping forever.
const maxContinuations = 1000

// Compute lays out a resolved tree onto a canvas and returns the slide
// sequence in document order (depth-first, pre-order).
//
// Each section is laid out independently: its template's slots are
// instantiated at absolute canvas coordinates, text is fitted by shrinking
// the font scale in quantized steps down to the template's minimum, and
// content that still overflows is split at block boundaries into continuation
// slides sharing the section's ID.
//
// Compute fails fast on the first error but returns the slides of all
// previously completed sections alongside it, so callers may choose
// partial-result handling.
func Compute(rt *ResolvedTree, canvas deck.Size, ctx *Context) ([]deck.Slide, error) {
	if !canvas.Positive() {
		return nil, errors.New(errors.ErrCodeEmptyCanvas, "canvas dimensions must be positive (%gx%g)", canvas.Width, canvas.Height)
	}
	if rt == nil {
		return nil, errors.New(errors.ErrCodeInvalidContent, "resolved tree is nil")
	}

	e := &engine{canvas: canvas, ctx: ctx}
	visited := make(map[string]bool)

	// Iterative pre-order traversal; the stack holds pending nodes with the
	// next document-order node on top.
	stack := make([]*ResolvedNode, 0, len(rt.Roots))
	for i := len(rt.Roots) - 1; i >= 0; i-- {
		stack = append(stack, rt.Roots[i])
	}

	for len(stack) > 0 {
		rn := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[rn.Node.ID()] {
			return e.slides, errors.NewNode(errors.ErrCodeCyclicReference, rn.Node.ID(), "node revisited during layout")
		}
		visited[rn.Node.ID()] = true

		if err := e.layoutSection(rn); err != nil {
			return e.slides, err
		}

		// Nested sections become their own slides after this section's.
		for i := len(rn.Children) - 1; i >= 0; i-- {
			if rn.Children[i].Node.Kind() == content.KindSection {
				stack = append(stack, rn.Children[i])
			}
		}
	}

	return e.slides, nil
}

type engine struct {
	canvas deck.Size
	ctx    *Context
	slides []deck.Slide
}

// flowItem is one pending content block during pagination. Text items track
// their remaining (possibly split) text.
type flowItem struct {
	node      *content.Node
	text      string
	continued bool
}

func (e *engine) layoutSection(rn *ResolvedNode) error {
	spec := rn.Spec
	node := rn.Node

	title := ""
	var items []*flowItem
	if node.Kind() == content.KindSection {
		title = node.Text()
		for _, c := range rn.Children {
			if c.Node.Kind() == content.KindSection {
				continue
			}
			items = append(items, &flowItem{node: c.Node, text: c.Node.Text()})
		}
	} else {
		// A bare top-level block renders as a single-element slide.
		items = []*flowItem{{node: node, text: node.Text()}}
	}

	// Media that cannot fit its slot even alone fails before any slide of
	// this section is emitted.
	if mediaSlot := spec.Slot(template.SlotMedia); mediaSlot != nil {
		slotRect := e.slotRect(*mediaSlot)
		for _, it := range items {
			if isMedia(it.node) {
				if _, _, ok := e.mediaFrame(it.node, slotRect, spec.Fit); !ok {
					return errors.NewNode(errors.ErrCodeElementTooLarge, it.node.ID(),
						"%s does not fit %gx%g media slot even alone", it.node.Kind(), slotRect.Width, slotRect.Height)
				}
			}
		}
	}

	secNum := 0
	if spec.Slot(template.SlotNumber) != nil {
		secNum = e.ctx.NextSection()
	}

	role := node.Attr(content.AttrRole)
	for cont := 0; ; cont++ {
		if cont >= maxContinuations {
			return errors.NewNode(errors.ErrCodeCyclicReference, node.ID(), "continuation chain exceeded %d slides", maxContinuations)
		}

		slide := deck.Slide{
			Number:            e.ctx.NextSlide(),
			Template:          spec.Name,
			Role:              role,
			SourceSectionID:   node.ID(),
			ContinuationIndex: cont,
		}

		if ts := spec.Slot(template.SlotTitle); ts != nil && title != "" {
			frame := e.slotRect(*ts)
			slide.Elements = append(slide.Elements, deck.Element{
				Kind:      deck.ElementTitle,
				NodeID:    node.ID(),
				Slot:      ts.Name,
				Frame:     frame,
				Text:      title,
				FontScale: fitSingle(title, frame.Width, frame.Height, spec.Fit),
			})
		}
		if ns := spec.Slot(template.SlotNumber); ns != nil && secNum > 0 {
			frame := e.slotRect(*ns)
			label := e.ctx.SectionLabel(secNum)
			slide.Elements = append(slide.Elements, deck.Element{
				Kind:      deck.ElementNumber,
				NodeID:    node.ID(),
				Slot:      ns.Name,
				Frame:     frame,
				Text:      label,
				FontScale: fitSingle(label, frame.Width, frame.Height, spec.Fit),
			})
		}

		// Sections without block content (covers, closers, pure section
		// containers) emit their single title/number slide and are done.
		if len(items) == 0 {
			e.slides = append(e.slides, slide)
			return nil
		}

		headText := items[0].text
		remaining, err := e.fillContent(&slide, spec, items)
		if err != nil {
			return err
		}
		e.slides = append(e.slides, slide)

		if len(remaining) == 0 {
			return nil
		}
		if len(remaining) == len(items) && remaining[0].text == headText {
			// No block placed and no block split: the slide cannot absorb
			// anything, so continuing would loop.
			return errors.NewNode(errors.ErrCodeElementTooLarge, remaining[0].node.ID(),
				"content cannot be placed on template %q", spec.Name)
		}
		items = remaining
	}
}

// fillContent places pending items onto the slide in order until the body
// slot's line capacity is exhausted or the media slot is occupied. It returns
// the items left for a continuation slide.
func (e *engine) fillContent(slide *deck.Slide, spec *template.Spec, items []*flowItem) ([]*flowItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	bodySlot := spec.Slot(template.SlotBody)
	mediaSlot := spec.Slot(template.SlotMedia)

	var bodyRect deck.Rect
	scale := 1.0
	cols, capacity := 0, 0
	if bodySlot != nil {
		bodyRect = e.slotRect(*bodySlot)

		// Fit all remaining text; if even the minimum scale overflows, the
		// slide is filled greedily at minimum scale and the rest splits off.
		var texts []string
		for _, it := range items {
			if it.node.Kind() == content.KindTextBlock {
				texts = append(texts, it.text)
			}
		}
		scale, _ = fitScale(texts, bodyRect.Width, bodyRect.Height, spec.Fit)
		cols = charsPerLine(bodyRect.Width, spec.Fit, scale)
		capacity = rowCapacity(bodyRect.Height, spec.Fit, scale)
	}

	usedLines := 0
	mediaUsed := false

	for len(items) > 0 {
		it := items[0]

		if isMedia(it.node) {
			if mediaUsed {
				return items, nil // next media gets its own continuation
			}
			slotRect := e.slotRect(*mediaSlot)
			frame, mediaScale, ok := e.mediaFrame(it.node, slotRect, spec.Fit)
			if !ok {
				// Checked up front; kept as a defensive guard.
				return items, errors.NewNode(errors.ErrCodeElementTooLarge, it.node.ID(), "media does not fit its slot")
			}
			kind := deck.ElementImage
			if it.node.Kind() == content.KindTableRef {
				kind = deck.ElementTable
			}
			slide.Elements = append(slide.Elements, deck.Element{
				Kind:      kind,
				NodeID:    it.node.ID(),
				Slot:      mediaSlot.Name,
				Frame:     frame,
				Ref:       it.node.Ref(),
				FontScale: mediaScale,
			})
			mediaUsed = true
			items = items[1:]
			continue
		}

		// Text block.
		avail := capacity - usedLines
		if avail <= 0 {
			if usedLines == 0 && !mediaUsed {
				return items, errors.NewNode(errors.ErrCodeElementTooLarge, it.node.ID(),
					"body slot holds no text lines at minimum font scale")
			}
			return items, nil
		}

		lines := wrapText(it.text, cols)
		lineH := spec.Fit.LineHeight * scale

		if len(lines) <= avail {
			slide.Elements = append(slide.Elements, deck.Element{
				Kind:      deck.ElementText,
				NodeID:    it.node.ID(),
				Slot:      bodySlot.Name,
				Frame:     deck.Rect{X: bodyRect.X, Y: bodyRect.Y + float64(usedLines)*lineH, Width: bodyRect.Width, Height: float64(len(lines)) * lineH},
				Text:      it.text,
				FontScale: scale,
				Continued: it.continued,
			})
			usedLines += len(lines)
			items = items[1:]
			continue
		}

		// The block does not fit the space left on this slide. Prefer the
		// block boundary; split mid-block only when the block alone exceeds
		// a whole empty slot.
		if usedLines > 0 || mediaUsed {
			return items, nil
		}

		head := joinLines(lines[:avail])
		tail := joinLines(lines[avail:])
		slide.Elements = append(slide.Elements, deck.Element{
			Kind:      deck.ElementText,
			NodeID:    it.node.ID(),
			Slot:      bodySlot.Name,
			Frame:     deck.Rect{X: bodyRect.X, Y: bodyRect.Y, Width: bodyRect.Width, Height: float64(avail) * lineH},
			Text:      head,
			FontScale: scale,
			Continued: it.continued,
		})
		it.text = tail
		it.continued = true
		return items, nil
	}

	return nil, nil
}

// slotRect converts a slot's relative geometry to absolute canvas coordinates.
func (e *engine) slotRect(s template.Slot) deck.Rect {
	return deck.Rect{
		X:      s.X * e.canvas.Width,
		Y:      s.Y * e.canvas.Height,
		Width:  s.Width * e.canvas.Width,
		Height: s.Height * e.canvas.Height,
	}
}

// mediaFrame computes the frame of an image or table inside its slot and
// reports whether the element fits at all.
//
// Images are never scaled by the engine: a declared width/height larger than
// the slot fails. Tables shrink with the font scale down to the template
// minimum before failing.
func (e *engine) mediaFrame(n *content.Node, slot deck.Rect, fit template.FitPolicy) (deck.Rect, float64, bool) {
	switch n.Kind() {
	case content.KindImageRef:
		w := attrFloat(n, "width")
		h := attrFloat(n, "height")
		if w <= 0 || h <= 0 {
			return slot, 1, true // no declared size: fill the slot
		}
		if w > slot.Width || h > slot.Height {
			return deck.Rect{}, 0, false
		}
		return deck.Rect{
			X:      slot.X + (slot.Width-w)/2,
			Y:      slot.Y + (slot.Height-h)/2,
			Width:  w,
			Height: h,
		}, 1, true

	case content.KindTableRef:
		rows, _ := n.TableSize()
		minScale := quantizeScale(fit.MinFontScale)
		scale := 1.0
		for {
			height := float64(rows) * fit.LineHeight * scale
			if height <= slot.Height {
				return deck.Rect{X: slot.X, Y: slot.Y, Width: slot.Width, Height: height}, scale, true
			}
			next := quantizeScale(scale - scaleStep)
			if next < minScale-1e-9 || next >= scale {
				return deck.Rect{}, 0, false
			}
			scale = next
		}
	}
	return slot, 1, true
}

func isMedia(n *content.Node) bool {
	return n.Kind() == content.KindImageRef || n.Kind() == content.KindTableRef
}

func attrFloat(n *content.Node, key string) float64 {
	v := n.Attr(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
