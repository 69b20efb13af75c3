package main

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/a11yscan/engine/domtree"
)

// parseHTMLFragment turns raw HTML bytes into a domtree.Fragment. This
// lives in the CLI, not in the engine module, because concrete markup
// parsing is an external collaborator's job (the core engine only
// consumes already-built domtree.Fragment values); golang.org/x/net/html
// is the one pack example of an html.Node-walking accessibility
// engine's ingestion path, adapted here into domtree's own element
// model instead of a bespoke HTMLElement wrapper.
func parseHTMLFragment(file string, src []byte) (*domtree.Fragment, error) {
	doc, err := html.Parse(strings.NewReader(string(src)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}

	fragment := domtree.NewFragment(file)
	var walk func(n *html.Node, parentID int)
	walk = func(n *html.Node, parentID int) {
		id := parentID
		if n.Type == html.ElementNode {
			attrs := make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
			id = fragment.AddElement(domtree.NewElement(n.Data, attrs), parentID)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, id)
		}
	}
	walk(doc, -1)
	return fragment, nil
}
