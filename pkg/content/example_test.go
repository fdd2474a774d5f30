package content_test

import (
	"fmt"

	"github.com/slidegen/slidegen/pkg/content"
)

func ExampleNewDocument() {
	intro := content.NewSection("intro", "Introduction", []*content.Node{
		content.NewTextBlock("p1", "Welcome to the quarterly review."),
	})
	results := content.NewSection("results", "Results", []*content.Node{
		content.NewTextBlock("p2", "Revenue grew 12% year over year."),
		content.NewImageRef("chart", "assets/revenue.png"),
	})

	doc, err := content.NewDocument("Quarterly Review", []*content.Node{intro, results})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(doc.Title())
	fmt.Println("nodes:", doc.NodeCount())
	// Output:
	// Quarterly Review
	// nodes: 5
}

func ExampleDocument_Walk() {
	doc, _ := content.NewDocument("Demo", []*content.Node{
		content.NewSection("s1", "First", []*content.Node{
			content.NewTextBlock("t1", "hello"),
		}),
		content.NewSection("s2", "Second", nil),
	})

	// Walk visits nodes in depth-first pre-order.
	doc.Walk(func(n *content.Node) bool {
		fmt.Println(n.ID(), n.Kind())
		return true
	})
	// Output:
	// s1 section
	// t1 text
	// s2 section
}
