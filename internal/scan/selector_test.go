// File: internal/scan/selector_test.go
package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestBuildSelectorPrefersID(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="target" class="fancy"></div></body></html>`)
	n := findFirst(doc, func(n *html.Node) bool { return attr(n, "id") == "target" })
	require.NotNil(t, n)
	assert.Equal(t, "#target", BuildSelector(n))
}

func TestBuildSelectorUsesFirstClassToken(t *testing.T) {
	doc := parseDoc(t, `<html><body><div class="outer wrap"><span class="label primary">hi</span></div></body></html>`)
	n := findFirst(doc, func(n *html.Node) bool { return isElement(n, "span") })
	require.NotNil(t, n)

	sel := BuildSelector(n)
	assert.True(t, strings.HasSuffix(sel, "span.label"), "got %q", sel)
	assert.Contains(t, sel, "div.outer > ")
}

func TestBuildSelectorDisambiguatesSiblings(t *testing.T) {
	doc := parseDoc(t, `<html><body><ul><li>a</li><li>b</li><li>c</li></ul></body></html>`)
	items := findAll(doc, func(n *html.Node) bool { return isElement(n, "li") })
	require.Len(t, items, 3)

	selectors := map[string]bool{}
	for i, li := range items {
		sel := BuildSelector(li)
		assert.Contains(t, sel, ":nth-child(", "item %d needs a positional index", i)
		selectors[sel] = true
	}
	assert.Len(t, selectors, 3, "sibling selectors must be distinct")
	assert.True(t, strings.HasSuffix(BuildSelector(items[1]), "li:nth-child(2)"))
}

func TestBuildSelectorIndexCountsAllElementChildren(t *testing.T) {
	// The positional index is the element's position among all element
	// siblings. The second <p> is the third element child.
	doc := parseDoc(t, `<html><body><div><p>a</p><span>x</span><p>b</p></div></body></html>`)
	paras := findAll(doc, func(n *html.Node) bool { return isElement(n, "p") })
	require.Len(t, paras, 2)

	assert.True(t, strings.HasSuffix(BuildSelector(paras[0]), "p:nth-child(1)"))
	assert.True(t, strings.HasSuffix(BuildSelector(paras[1]), "p:nth-child(3)"))
}

func TestBuildSelectorStripsInvalidClassCharacters(t *testing.T) {
	doc := parseDoc(t, `<html><body><div class="a:b/c rest"></div></body></html>`)
	n := findFirst(doc, func(n *html.Node) bool { return isElement(n, "div") && attr(n, "class") != "" })
	require.NotNil(t, n)
	assert.True(t, strings.HasSuffix(BuildSelector(n), "div.abc"))
}

func TestBuildSelectorNil(t *testing.T) {
	assert.Equal(t, "", BuildSelector(nil))
}

func TestBuildSelectorDeterministic(t *testing.T) {
	doc := parseDoc(t, mixedFormHTML)
	n := findFirst(doc, func(n *html.Node) bool { return isElement(n, "textarea") })
	require.NotNil(t, n)
	assert.Equal(t, BuildSelector(n), BuildSelector(n))
}
