package layout

import (
	"testing"

	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/template"
)

func TestResolveBindsEveryNode(t *testing.T) {
	doc := mustDoc(t, content.NewSection("s1", "Intro", []*content.Node{
		content.NewTextBlock("t1", "text"),
		content.NewImageRef("i1", "a.png"),
	}, content.WithTemplate("rich")))

	ctx := NewContext(template.DefaultTheme, "en")
	rt, err := Resolve(doc, engineCatalog(t), ctx)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(rt.Roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(rt.Roots))
	}
	root := rt.Roots[0]
	if root.Spec.Name != "rich" {
		t.Errorf("section template = %q, want rich", root.Spec.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(root.Children))
	}
	for _, c := range root.Children {
		if c.Spec == nil {
			t.Errorf("child %s has no template", c.Node.ID())
		}
	}
}

func TestResolveNoTemplateForKind(t *testing.T) {
	c, err := template.NewCatalog([]*template.Spec{{
		Name:  "text-only",
		Kinds: []content.Kind{content.KindSection, content.KindTextBlock},
		Slots: []template.Slot{
			{Name: "body", Type: template.SlotBody, X: 0, Y: 0, Width: 1, Height: 1},
		},
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	doc := mustDoc(t, content.NewSection("s1", "Intro", []*content.Node{
		content.NewImageRef("i1", "a.png"),
	}))

	ctx := NewContext(template.DefaultTheme, "en")
	rt, err := Resolve(doc, c, ctx)
	if !errors.Is(err, errors.ErrCodeNoTemplate) {
		t.Fatalf("error = %v, want NO_TEMPLATE", err)
	}
	if errors.NodeID(err) != "i1" {
		t.Errorf("error node = %q, want i1", errors.NodeID(err))
	}
	if rt != nil {
		t.Error("resolution failure returned a tree")
	}
}

func TestResolveSectionMissingMediaSlot(t *testing.T) {
	c, err := template.NewCatalog([]*template.Spec{
		{
			Name:  "plain",
			Kinds: []content.Kind{content.KindSection, content.KindTextBlock},
			Slots: []template.Slot{
				{Name: "body", Type: template.SlotBody, X: 0, Y: 0, Width: 1, Height: 1},
			},
		},
		{
			Name:  "figure",
			Kinds: []content.Kind{content.KindImageRef},
			Slots: []template.Slot{
				{Name: "media", Type: template.SlotMedia, X: 0, Y: 0, Width: 1, Height: 1},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	// The image itself resolves to "figure", but its parent section's
	// template has nowhere to place it.
	doc := mustDoc(t, content.NewSection("s1", "Intro", []*content.Node{
		content.NewImageRef("i1", "a.png"),
	}))

	ctx := NewContext(template.DefaultTheme, "en")
	_, err = Resolve(doc, c, ctx)
	if !errors.Is(err, errors.ErrCodeNoTemplate) {
		t.Fatalf("error = %v, want NO_TEMPLATE", err)
	}
	if errors.NodeID(err) != "s1" {
		t.Errorf("error node = %q, want s1", errors.NodeID(err))
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	doc := mustDoc(t, content.NewTextBlock("t1", "text"))
	ctx := NewContext(template.DefaultTheme, "en")

	if _, err := Resolve(doc, nil, ctx); !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("error = %v, want INVALID_CATALOG", err)
	}
}
