// Package content defines the abstract content model for a presentation.
//
// A presentation is described as a tree of typed nodes: sections containing
// text blocks, image references and table references. The tree is pure data —
// it carries no layout information. Node order is significant and defines
// slide order in the generated deck.
//
// Trees are immutable once constructed. Build nodes with the constructor
// functions (NewSection, NewTextBlock, ...) and assemble them into a Document.
// A Document is owned by the request that created it and must not be shared
// across concurrent generation requests while still being built.
package content

import (
	"github.com/slidegen/slidegen/pkg/errors"
)

// Kind identifies the type of a content node.
type Kind string

const (
	// KindSection is a logical grouping of content that maps to one or more
	// physical slides.
	KindSection Kind = "section"
	// KindTextBlock is a run of text (paragraph, bullet, quote).
	KindTextBlock Kind = "text"
	// KindImageRef references an image by URI or asset ID. The engine never
	// fetches the image; it only reserves geometry for it.
	KindImageRef Kind = "image"
	// KindTableRef references tabular data by asset ID with known dimensions.
	KindTableRef Kind = "table"
)

// Valid reports whether k is a known content kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSection, KindTextBlock, KindImageRef, KindTableRef:
		return true
	}
	return false
}

// Well-known semantic attribute keys.
const (
	// AttrTemplate names a template explicitly, overriding catalog defaults.
	AttrTemplate = "template"
	// AttrRole marks the slide role of a section (cover, toc, body, closing).
	AttrRole = "role"
	// AttrLevel carries the heading level of a section ("1", "2", ...).
	AttrLevel = "level"
	// AttrEmphasis marks emphasized text blocks ("strong", "em").
	AttrEmphasis = "emphasis"
)

// Section roles, mirroring the page types of a full presentation.
const (
	RoleCover   = "cover"
	RoleTOC     = "toc"
	RoleHeader  = "header"
	RoleBody    = "body"
	RoleClosing = "closing"
)

// Node is a single element of a content tree. Nodes are immutable after
// construction; all mutation happens through constructors.
type Node struct {
	id       string
	kind     Kind
	text     string // text blocks: the text content
	ref      string // image/table refs: asset URI or ID
	rows     int    // table refs: row count
	cols     int    // table refs: column count
	attrs    map[string]string
	children []*Node
}

// ID returns the node's stable identifier.
func (n *Node) ID() string { return n.id }

// Kind returns the node's content kind.
func (n *Node) Kind() Kind { return n.kind }

// Text returns the text content of a text block, or "" for other kinds.
func (n *Node) Text() string { return n.text }

// Ref returns the asset reference of an image or table node.
func (n *Node) Ref() string { return n.ref }

// TableSize returns the row and column counts of a table node.
func (n *Node) TableSize() (rows, cols int) { return n.rows, n.cols }

// Attr returns the value of a semantic attribute, or "" if unset.
func (n *Node) Attr(key string) string { return n.attrs[key] }

// Attrs returns a copy of the node's attribute map.
func (n *Node) Attrs() map[string]string {
	if len(n.attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Children returns the node's ordered children. The returned slice is shared;
// callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Option configures a node at construction time.
type Option func(*Node)

// WithAttr sets a semantic attribute on the node.
func WithAttr(key, value string) Option {
	return func(n *Node) {
		if n.attrs == nil {
			n.attrs = make(map[string]string)
		}
		n.attrs[key] = value
	}
}

// WithTemplate names the template the node should resolve to.
func WithTemplate(name string) Option {
	return WithAttr(AttrTemplate, name)
}

// WithRole sets the section role (cover, toc, header, body, closing).
func WithRole(role string) Option {
	return WithAttr(AttrRole, role)
}

// NewSection creates a section node with ordered children.
func NewSection(id, title string, children []*Node, opts ...Option) *Node {
	n := &Node{
		id:       id,
		kind:     KindSection,
		text:     title,
		children: children,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewTextBlock creates a text block node.
func NewTextBlock(id, text string, opts ...Option) *Node {
	n := &Node{id: id, kind: KindTextBlock, text: text}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewImageRef creates an image reference node.
func NewImageRef(id, ref string, opts ...Option) *Node {
	n := &Node{id: id, kind: KindImageRef, ref: ref}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewTableRef creates a table reference node with known dimensions.
func NewTableRef(id, ref string, rows, cols int, opts ...Option) *Node {
	n := &Node{id: id, kind: KindTableRef, ref: ref, rows: rows, cols: cols}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Document is the root of a content tree: an ordered sequence of top-level
// sections plus presentation metadata.
type Document struct {
	title    string
	subtitle string
	sections []*Node
}

// NewDocument assembles a validated content tree. It returns an error if any
// node has an invalid ID, a duplicate ID, an unknown kind, or content that
// does not match its kind (e.g. a text block with children).
func NewDocument(title string, sections []*Node) (*Document, error) {
	d := &Document{title: title, sections: sections}
	seen := make(map[string]struct{})
	for _, s := range sections {
		if err := validateNode(s, seen); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// WithSubtitle returns a copy of the document with the subtitle set.
func (d *Document) WithSubtitle(subtitle string) *Document {
	out := *d
	out.subtitle = subtitle
	return &out
}

// Title returns the presentation title.
func (d *Document) Title() string { return d.title }

// Subtitle returns the presentation subtitle, if any.
func (d *Document) Subtitle() string { return d.subtitle }

// Sections returns the ordered top-level sections.
func (d *Document) Sections() []*Node { return d.sections }

// Walk visits every node in depth-first pre-order, the document order that
// defines slide order. The walk stops early if fn returns false.
func (d *Document) Walk(fn func(*Node) bool) {
	for _, s := range d.sections {
		if !walk(s, fn) {
			return
		}
	}
}

// NodeCount returns the total number of nodes in the tree.
func (d *Document) NodeCount() int {
	count := 0
	d.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Find returns the node with the given ID, or nil if absent.
func (d *Document) Find(id string) *Node {
	var found *Node
	d.Walk(func(n *Node) bool {
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func validateNode(n *Node, seen map[string]struct{}) error {
	if err := errors.ValidateNodeID(n.id); err != nil {
		return err
	}
	if _, dup := seen[n.id]; dup {
		return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "duplicate node ID")
	}
	seen[n.id] = struct{}{}

	if !n.kind.Valid() {
		return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "unknown content kind %q", n.kind)
	}

	switch n.kind {
	case KindSection:
		for _, c := range n.children {
			if err := validateNode(c, seen); err != nil {
				return err
			}
		}
	case KindTextBlock:
		if len(n.children) > 0 {
			return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "text block cannot have children")
		}
		if n.text == "" {
			return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "text block cannot be empty")
		}
	case KindImageRef:
		if n.ref == "" {
			return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "image reference cannot be empty")
		}
		if len(n.children) > 0 {
			return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "image reference cannot have children")
		}
	case KindTableRef:
		if n.ref == "" {
			return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "table reference cannot be empty")
		}
		if n.rows <= 0 || n.cols <= 0 {
			return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "table dimensions must be positive (%dx%d)", n.rows, n.cols)
		}
		if len(n.children) > 0 {
			return errors.NewNode(errors.ErrCodeInvalidContent, n.id, "table reference cannot have children")
		}
	}
	return nil
}
