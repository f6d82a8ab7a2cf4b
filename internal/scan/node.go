// File: internal/scan/node.go
// Description: Small query helpers over golang.org/x/net/html nodes. The
// scanner and classifier walk a parsed snapshot of the rendered document,
// so everything here is a pure read.
package scan

import (
	"strings"

	"golang.org/x/net/html"
)

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node carries the given class token.
func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// isElement reports whether the node is an element with the given tag.
func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// findAll collects every descendant (and the root itself) matching the
// predicate, in document (pre-order) order.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// findFirst returns the first matching node in document order, or nil.
func findFirst(root *html.Node, pred func(*html.Node) bool) *html.Node {
	for _, n := range findAll(root, pred) {
		return n
	}
	return nil
}

// textContent returns the visible text of the subtree with whitespace
// collapsed, approximating innerText for the markup we scan.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// hasAnyClass reports whether the node carries any of the class tokens.
func hasAnyClass(n *html.Node, classes ...string) bool {
	for _, c := range classes {
		if hasClass(n, c) {
			return true
		}
	}
	return false
}

// inputType returns the lowercased type attribute of an <input> node.
func inputType(n *html.Node) string {
	return strings.ToLower(attr(n, "type"))
}
