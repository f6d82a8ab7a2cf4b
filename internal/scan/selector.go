// File: internal/scan/selector.go
package scan

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// maxSelectorDepth bounds the upward walk when synthesizing a path.
const maxSelectorDepth = 10

var classTokenSanitizer = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// BuildSelector synthesizes a resilient, human-readable CSS locator path for
// a node within a given document snapshot. An id attribute wins outright;
// otherwise the path records, for up to ten ancestors, the tag name plus a
// normalized first class token, disambiguating same-tag siblings with a
// 1-based positional index. Deterministic for a fixed snapshot. Returns ""
// only when no node is supplied.
func BuildSelector(n *html.Node) string {
	if n == nil {
		return ""
	}
	if id := attr(n, "id"); id != "" {
		return "#" + id
	}

	var parts []string
	node := n
	for depth := 0; node != nil && node.Type == html.ElementNode && depth < maxSelectorDepth; depth++ {
		part := node.Data
		if cls := attr(node, "class"); cls != "" {
			if fields := strings.Fields(cls); len(fields) > 0 {
				if token := classTokenSanitizer.ReplaceAllString(fields[0], ""); token != "" {
					part += "." + token
				}
			}
		}
		if parent := parentElement(node); parent != nil {
			sameTag := 0
			for c := parent.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == node.Data {
					sameTag++
				}
			}
			if sameTag > 1 {
				// The positional index counts all element children, not just
				// same-tag ones; generated paths must match what a browser's
				// :nth-child resolves against.
				idx := 0
				for c := parent.FirstChild; c != nil; c = c.NextSibling {
					if c.Type != html.ElementNode {
						continue
					}
					idx++
					if c == node {
						break
					}
				}
				part += ":nth-child(" + strconv.Itoa(idx) + ")"
			}
		}
		parts = append([]string{part}, parts...)
		node = parentElement(node)
	}
	return strings.Join(parts, " > ")
}

// parentElement returns the nearest element ancestor, skipping the document
// node that x/net/html inserts above <html>.
func parentElement(n *html.Node) *html.Node {
	p := n.Parent
	if p != nil && p.Type == html.ElementNode {
		return p
	}
	return nil
}
