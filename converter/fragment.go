package converter

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	listItemSelector = cascadia.MustCompile("li")
	codeSelector     = cascadia.MustCompile("code")
	imageSelector    = cascadia.MustCompile("img")
)

// InnerHTML strips the opening tag at the start and the closing tag at the end
// of a trimmed fragment. Tag names are not matched against each other, and
// nested markup between the two is kept verbatim.
func InnerHTML(fragment string) string {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return ""
	}

	start, end := 0, len(trimmed)
	lastClose := -1
	offset := 0
	z := html.NewTokenizer(strings.NewReader(trimmed))
	for first := true; ; first = false {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		size := len(z.Raw())
		if first && tt == html.StartTagToken {
			start = size
		}
		if tt == html.EndTagToken {
			lastClose = offset
		} else {
			lastClose = -1
		}
		offset += size
	}

	if lastClose >= start && offset == len(trimmed) {
		end = lastClose
	}
	return trimmed[start:end]
}

// parseFragment parses body as HTML in a body context and returns a detached
// container holding the resulting nodes.
func parseFragment(body string) *html.Node {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(body), context)
	if err != nil {
		container.AppendChild(&html.Node{Type: html.TextNode, Data: body})
		return container
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container
}

// topLevelListItems returns the li elements that are not nested in another li.
func topLevelListItems(root *html.Node) []*html.Node {
	var items []*html.Node
	for _, li := range listItemSelector.MatchAll(root) {
		if !hasAncestor(li, root, atom.Li) {
			items = append(items, li)
		}
	}
	return items
}

// innermostCode returns the first code element without a nested code element.
func innermostCode(root *html.Node) *html.Node {
	for _, code := range codeSelector.MatchAll(root) {
		if !hasCodeDescendant(code) {
			return code
		}
	}
	return nil
}

func hasCodeDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if codeSelector.MatchFirst(c) != nil {
			return true
		}
	}
	return false
}

func firstImage(root *html.Node) *html.Node {
	return imageSelector.MatchFirst(root)
}

func hasAncestor(n, stop *html.Node, a atom.Atom) bool {
	for p := n.Parent; p != nil && p != stop; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == a {
			return true
		}
	}
	return false
}

// textContent concatenates the decoded text of n and its descendants.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func nodeAttr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
