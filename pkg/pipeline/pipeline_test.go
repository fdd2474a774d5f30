package pipeline

import (
	"context"
	"testing"

	"github.com/slidegen/slidegen/pkg/cache"
	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/store"
	"github.com/slidegen/slidegen/pkg/template"
)

func authoredDoc(t *testing.T) *content.Document {
	t.Helper()
	doc, err := content.NewDocument("Quarterly Review", []*content.Node{
		content.NewSection("intro", "Introduction", []*content.Node{
			content.NewTextBlock("intro-1", "Agenda and goals for the quarter"),
		}),
		content.NewSection("results", "Results", []*content.Node{
			content.NewTextBlock("results-1", "Revenue grew in all regions"),
			content.NewTextBlock("results-2", "Churn stayed flat"),
		}),
	})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc.WithSubtitle("FY26 Q3")
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("canvas defaults = %gx%g", opts.Width, opts.Height)
	}
	if opts.Locale != DefaultLocale {
		t.Errorf("locale default = %q", opts.Locale)
	}
	if opts.Logger == nil {
		t.Error("logger not defaulted")
	}

	// Idempotent.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestOptionsRejectNegativeCanvas(t *testing.T) {
	opts := Options{Width: -100}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("error = %v, want INVALID_CANVAS", err)
	}
}

func TestAssembleFrontMatter(t *testing.T) {
	doc, err := AssembleFrontMatter(authoredDoc(t))
	if err != nil {
		t.Fatalf("AssembleFrontMatter: %v", err)
	}

	sections := doc.Sections()
	if len(sections) != 5 { // cover, toc, 2 authored, closing
		t.Fatalf("got %d sections, want 5", len(sections))
	}
	if sections[0].Attr(content.AttrRole) != content.RoleCover {
		t.Errorf("first section role = %q, want cover", sections[0].Attr(content.AttrRole))
	}
	if sections[1].Attr(content.AttrRole) != content.RoleTOC {
		t.Errorf("second section role = %q, want toc", sections[1].Attr(content.AttrRole))
	}
	if sections[2].ID() != "intro" || sections[3].ID() != "results" {
		t.Error("authored sections not preserved in order")
	}
	last := sections[len(sections)-1]
	if last.Attr(content.AttrRole) != content.RoleClosing {
		t.Errorf("last section role = %q, want closing", last.Attr(content.AttrRole))
	}

	// Cover carries the subtitle as a text child.
	cover := sections[0]
	if cover.Text() != "Quarterly Review" {
		t.Errorf("cover title = %q", cover.Text())
	}
	if len(cover.Children()) != 1 || cover.Children()[0].Text() != "FY26 Q3" {
		t.Error("cover subtitle block missing")
	}

	// TOC lists the authored sections, numbered.
	entries := sections[1].Children()[0].Text()
	want := "01  Introduction\n02  Results"
	if entries != want {
		t.Errorf("toc entries = %q, want %q", entries, want)
	}
}

func TestAssembleFrontMatterIDCollision(t *testing.T) {
	doc, err := content.NewDocument("T", []*content.Node{
		content.NewSection("__cover__", "Clash", nil),
	})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if _, err := AssembleFrontMatter(doc); err == nil {
		t.Error("reserved ID collision not rejected")
	}
}

func TestAssignmentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog := template.Default()
	r := NewRunner(cache.NewNullCache(), nil, nil)

	doc := authoredDoc(t)
	rt, err := r.Resolve(ctx, doc, Options{Catalog: catalog})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	asg := flattenAssignments(rt)
	if len(asg) != doc.NodeCount() {
		t.Errorf("assignments cover %d nodes, want %d", len(asg), doc.NodeCount())
	}

	rebuilt, err := applyAssignments(doc, catalog.Catalog(), asg)
	if err != nil {
		t.Fatalf("applyAssignments: %v", err)
	}
	for i, root := range rebuilt.Roots {
		if root.Spec.Name != rt.Roots[i].Spec.Name {
			t.Errorf("root %d rebuilt as %q, want %q", i, root.Spec.Name, rt.Roots[i].Spec.Name)
		}
	}

	// A stale assignment map is rejected rather than silently applied.
	delete(asg, "intro")
	if _, err := applyAssignments(doc, catalog.Catalog(), asg); err == nil {
		t.Error("incomplete assignments accepted")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()

	result, err := r.Execute(ctx, authoredDoc(t), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	d := result.Deck
	if d == nil || d.SlideCount() == 0 {
		t.Fatal("no deck produced")
	}
	if d.Title != "Quarterly Review" {
		t.Errorf("deck title = %q", d.Title)
	}
	if d.Canvas != (deck.Size{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("deck canvas = %+v", d.Canvas)
	}
	if d.Theme.Name != "default" {
		t.Errorf("deck theme = %q", d.Theme.Name)
	}

	// Front matter bookends the authored sections.
	if d.Slides[0].Role != content.RoleCover {
		t.Errorf("first slide role = %q, want cover", d.Slides[0].Role)
	}
	if d.Slides[1].Role != content.RoleTOC {
		t.Errorf("second slide role = %q, want toc", d.Slides[1].Role)
	}
	if last := d.Slides[d.SlideCount()-1]; last.Role != content.RoleClosing {
		t.Errorf("last slide role = %q, want closing", last.Role)
	}

	if result.DocHash == "" {
		t.Error("doc hash not set")
	}
	if result.Stats.SlideCount != d.SlideCount() {
		t.Error("stats slide count mismatch")
	}
}

func TestRunnerExecuteSkipFrontMatter(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil, nil)

	result, err := r.Execute(ctx, authoredDoc(t), Options{SkipFrontMatter: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, s := range result.Deck.Slides {
		if s.Role == content.RoleCover || s.Role == content.RoleClosing {
			t.Errorf("front matter slide %q emitted despite SkipFrontMatter", s.Role)
		}
	}
}

func TestRunnerExecuteDeckCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	first, err := r.Execute(ctx, authoredDoc(t), Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.DeckHit {
		t.Error("first run reported a deck cache hit")
	}

	second, err := r.Execute(ctx, authoredDoc(t), Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.DeckHit {
		t.Error("second run missed the deck cache")
	}
	if second.Deck.SlideCount() != first.Deck.SlideCount() {
		t.Error("cached deck differs from computed deck")
	}

	// Refresh bypasses the cache.
	third, err := r.Execute(ctx, authoredDoc(t), Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.DeckHit {
		t.Error("refresh run hit the deck cache")
	}
}

func TestRunnerExecutePersistsDeck(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil, nil)
	r.Store = store.NewMemoryStore()

	result, err := r.Execute(ctx, authoredDoc(t), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	stored, err := r.Store.Get(ctx, result.Deck.ID)
	if err != nil {
		t.Fatalf("stored deck not found: %v", err)
	}
	if stored.SlideCount() != result.Deck.SlideCount() {
		t.Error("stored deck differs from result")
	}
}

func TestRunnerExecutePartialOnLayoutError(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil, nil)

	doc, err := content.NewDocument("Broken", []*content.Node{
		content.NewSection("ok", "Fine", []*content.Node{
			content.NewTextBlock("ok-1", "this section lays out"),
		}),
		content.NewSection("bad", "Broken", []*content.Node{
			content.NewImageRef("img", "huge.png",
				content.WithAttr("width", "90000"), content.WithAttr("height", "90000")),
		}),
	})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	result, err := r.Execute(ctx, doc, Options{SkipFrontMatter: true})
	if !errors.Is(err, errors.ErrCodeElementTooLarge) {
		t.Fatalf("error = %v, want ELEMENT_TOO_LARGE", err)
	}
	if errors.NodeID(err) != "img" {
		t.Errorf("error node = %q, want img", errors.NodeID(err))
	}
	if result == nil || result.Deck == nil {
		t.Fatal("partial result missing")
	}
	if len(result.Deck.Chain("ok")) == 0 {
		t.Error("completed section missing from partial deck")
	}
}

func TestRunnerExecuteUnknownTheme(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil, nil)

	_, err := r.Execute(ctx, authoredDoc(t), Options{Theme: "nonexistent"})
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("error = %v, want INVALID_THEME", err)
	}
}
