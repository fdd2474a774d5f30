package pipeline

import (
	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/layout"
	"github.com/slidegen/slidegen/pkg/template"
)

// assignments is the cacheable form of a resolution result: node ID to
// template name. The resolved tree itself holds catalog pointers and cannot
// be serialized, but the assignment map plus the catalog reproduce it
// exactly.
type assignments map[string]string

// flattenAssignments extracts the node-to-template mapping from a resolved
// tree.
func flattenAssignments(rt *layout.ResolvedTree) assignments {
	asg := make(assignments)
	var walk func(rn *layout.ResolvedNode)
	walk = func(rn *layout.ResolvedNode) {
		asg[rn.Node.ID()] = rn.Spec.Name
		for _, c := range rn.Children {
			walk(c)
		}
	}
	for _, root := range rt.Roots {
		walk(root)
	}
	return asg
}

// applyAssignments rebuilds a resolved tree from a cached assignment map.
// Any node without an assignment, or assigned a template missing from the
// catalog, fails; callers treat that as a cache miss and re-resolve.
func applyAssignments(doc *content.Document, catalog *template.Catalog, asg assignments) (*layout.ResolvedTree, error) {
	rt := &layout.ResolvedTree{Doc: doc}

	var build func(n *content.Node) (*layout.ResolvedNode, error)
	build = func(n *content.Node) (*layout.ResolvedNode, error) {
		name, ok := asg[n.ID()]
		if !ok {
			return nil, errors.NewNode(errors.ErrCodeNoTemplate, n.ID(), "no cached template assignment")
		}
		spec, ok := catalog.Get(name)
		if !ok {
			return nil, errors.NewNode(errors.ErrCodeNoTemplate, n.ID(), "cached template %q not in catalog", name)
		}
		rn := &layout.ResolvedNode{Node: n, Spec: spec}
		for _, c := range n.Children() {
			rc, err := build(c)
			if err != nil {
				return nil, err
			}
			rn.Children = append(rn.Children, rc)
		}
		return rn, nil
	}

	for _, s := range doc.Sections() {
		rn, err := build(s)
		if err != nil {
			return nil, err
		}
		rt.Roots = append(rt.Roots, rn)
	}
	return rt, nil
}
