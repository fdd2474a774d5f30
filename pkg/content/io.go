package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Wire format for content documents. Kept separate from the in-memory model
// so the model can stay immutable.
type document struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	Sections []wireNode `json:"sections"`
}

type wireNode struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Text     string            `json:"text,omitempty"`
	Ref      string            `json:"ref,omitempty"`
	Rows     int               `json:"rows,omitempty"`
	Cols     int               `json:"cols,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []wireNode        `json:"children,omitempty"`
}

// WriteJSON encodes a document as JSON and writes it to w.
// The output round-trips through [ReadJSON].
func WriteJSON(d *Document, w io.Writer) error {
	out := document{
		Title:    d.Title(),
		Subtitle: d.Subtitle(),
		Sections: make([]wireNode, len(d.Sections())),
	}
	for i, s := range d.Sections() {
		out.Sections[i] = exportNode(s)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ReadJSON decodes a JSON content document from r.
//
// The input must be a JSON object with a "title" and a "sections" array:
//
//	{
//	  "title": "Quarterly Review",
//	  "sections": [
//	    {"id": "intro", "kind": "section", "text": "Introduction",
//	     "children": [{"id": "intro-1", "kind": "text", "text": "Welcome."}]}
//	  ]
//	}
//
// Each node must have an "id" and a "kind" (section, text, image, table).
// Optional fields: text, ref, rows, cols, attrs, children.
//
// ReadJSON returns an error if the JSON is malformed or the resulting tree
// fails content validation (duplicate IDs, kind mismatches). Errors are
// wrapped with the offending node's ID where possible.
//
// The returned document is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var in document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	sections := make([]*Node, len(in.Sections))
	for i, wn := range in.Sections {
		sections[i] = importNode(wn)
	}

	d, err := NewDocument(in.Title, sections)
	if err != nil {
		return nil, err
	}
	if in.Subtitle != "" {
		d = d.WithSubtitle(in.Subtitle)
	}
	return d, nil
}

// ImportJSON reads a document from a JSON file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func exportNode(n *Node) wireNode {
	wn := wireNode{
		ID:    n.ID(),
		Kind:  string(n.Kind()),
		Text:  n.Text(),
		Ref:   n.Ref(),
		Attrs: n.Attrs(),
	}
	wn.Rows, wn.Cols = n.TableSize()
	if len(n.Children()) > 0 {
		wn.Children = make([]wireNode, len(n.Children()))
		for i, c := range n.Children() {
			wn.Children[i] = exportNode(c)
		}
	}
	return wn
}

func importNode(wn wireNode) *Node {
	var opts []Option
	for k, v := range wn.Attrs {
		opts = append(opts, WithAttr(k, v))
	}

	switch Kind(wn.Kind) {
	case KindTextBlock:
		return NewTextBlock(wn.ID, wn.Text, opts...)
	case KindImageRef:
		return NewImageRef(wn.ID, wn.Ref, opts...)
	case KindTableRef:
		return NewTableRef(wn.ID, wn.Ref, wn.Rows, wn.Cols, opts...)
	default:
		// Sections and unknown kinds go through NewSection; validation in
		// NewDocument rejects unknown kinds with the node's ID attached.
		children := make([]*Node, len(wn.Children))
		for i, c := range wn.Children {
			children[i] = importNode(c)
		}
		n := NewSection(wn.ID, wn.Text, children, opts...)
		n.kind = Kind(wn.Kind)
		if n.kind == "" {
			n.kind = KindSection
		}
		return n
	}
}
