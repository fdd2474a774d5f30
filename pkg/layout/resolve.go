package layout

import (
	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/template"
)

// ResolvedNode pairs a content node with the template it resolved to. The
// spec reference is non-owning: the catalog outlives every request, while the
// resolved tree is discarded after layout.
type ResolvedNode struct {
	Node     *content.Node
	Spec     *template.Spec
	Children []*ResolvedNode
}

// ResolvedTree is the output of the resolution pass: the content tree with a
// template bound to every node.
type ResolvedTree struct {
	Doc   *content.Document
	Roots []*ResolvedNode
}

// Resolve binds every node of the document to a template from the catalog.
//
// Selection follows [template.Catalog.Select]: an explicit "template"
// attribute wins, then role matches, then the most specific template for the
// node's kind. Resolution is deterministic — identical inputs always produce
// an identical tree.
//
// Resolve fails fast with a NO_TEMPLATE error naming the first node that
// cannot be bound, and additionally rejects section templates that lack the
// slots their children need (a text child with no body slot, a media child
// with no media slot), so the layout pass never encounters unplaceable
// content.
func Resolve(doc *content.Document, catalog *template.Catalog, ctx *Context) (*ResolvedTree, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidContent, "content document is nil")
	}
	if catalog == nil || catalog.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "template catalog is empty")
	}

	rt := &ResolvedTree{Doc: doc}
	for _, s := range doc.Sections() {
		rn, err := resolveNode(s, catalog)
		if err != nil {
			return nil, err
		}
		rt.Roots = append(rt.Roots, rn)
	}
	return rt, nil
}

func resolveNode(n *content.Node, catalog *template.Catalog) (*ResolvedNode, error) {
	spec, err := catalog.Select(n)
	if err != nil {
		return nil, err
	}

	rn := &ResolvedNode{Node: n, Spec: spec}
	for _, c := range n.Children() {
		rc, err := resolveNode(c, catalog)
		if err != nil {
			return nil, err
		}
		rn.Children = append(rn.Children, rc)
	}

	if n.Kind() == content.KindSection {
		if err := checkSlots(rn); err != nil {
			return nil, err
		}
	}
	return rn, nil
}

// checkSlots verifies the section's template provides a landing slot for each
// direct child kind.
func checkSlots(rn *ResolvedNode) error {
	for _, c := range rn.Children {
		switch c.Node.Kind() {
		case content.KindTextBlock:
			if rn.Spec.Slot(template.SlotBody) == nil {
				return errors.NewNode(errors.ErrCodeNoTemplate, rn.Node.ID(),
					"template %q has no body slot for text content", rn.Spec.Name)
			}
		case content.KindImageRef, content.KindTableRef:
			if rn.Spec.Slot(template.SlotMedia) == nil {
				return errors.NewNode(errors.ErrCodeNoTemplate, rn.Node.ID(),
					"template %q has no media slot for %s content", rn.Spec.Name, c.Node.Kind())
			}
		}
	}
	return nil
}
