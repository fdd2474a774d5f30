package pipeline

import (
	"fmt"
	"strings"

	"github.com/slidegen/slidegen/pkg/content"
)

// Reserved node IDs for synthesized front matter. The double-underscore
// prefix keeps them out of the authored ID space; a collision fails document
// validation.
const (
	coverID         = "__cover__"
	coverSubtitleID = "__cover_subtitle__"
	tocID           = "__toc__"
	tocEntriesID    = "__toc_entries__"
	closingID       = "__closing__"
)

// closingTitle is the text shown on the synthesized closing slide.
const closingTitle = "Thank You"

// AssembleFrontMatter wraps the authored sections with synthesized cover,
// table-of-contents and closing sections. The authored sections are shared,
// not copied; only the section list is new.
//
// The table of contents is a single text block listing the top-level section
// titles, one numbered entry per line. When the entries overflow their slot,
// the layout pass splits them across continuation slides like any other text.
func AssembleFrontMatter(doc *content.Document) (*content.Document, error) {
	var sections []*content.Node

	var coverChildren []*content.Node
	if doc.Subtitle() != "" {
		coverChildren = append(coverChildren, content.NewTextBlock(coverSubtitleID, doc.Subtitle()))
	}
	sections = append(sections, content.NewSection(coverID, doc.Title(), coverChildren,
		content.WithRole(content.RoleCover)))

	if entries := tocEntries(doc); entries != "" {
		sections = append(sections, content.NewSection(tocID, "Contents", []*content.Node{
			content.NewTextBlock(tocEntriesID, entries),
		}, content.WithRole(content.RoleTOC)))
	}

	sections = append(sections, doc.Sections()...)

	sections = append(sections, content.NewSection(closingID, closingTitle, nil,
		content.WithRole(content.RoleClosing)))

	out, err := content.NewDocument(doc.Title(), sections)
	if err != nil {
		return nil, err
	}
	if doc.Subtitle() != "" {
		out = out.WithSubtitle(doc.Subtitle())
	}
	return out, nil
}

// tocEntries renders the numbered table-of-contents listing, one line per
// top-level section.
func tocEntries(doc *content.Document) string {
	var lines []string
	n := 0
	for _, s := range doc.Sections() {
		if s.Kind() != content.KindSection || s.Text() == "" {
			continue
		}
		n++
		lines = append(lines, fmt.Sprintf("%02d  %s", n, s.Text()))
	}
	return strings.Join(lines, "\n")
}
