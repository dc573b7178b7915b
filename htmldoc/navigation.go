package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// navPattern matches class and id values that name navigation or sidebar
// boilerplate. Header and footer classes are not listed; top-level
// <header> and <footer> become the layout header and footer instead.
var navPattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumb|breadcrumbs|` +
		`sidebar|widget-area|widget|aside)([^a-z]|$)`)

// Link-density thresholds for aggressive exclusion.
const (
	maxLinkDensity = 0.6
	minLinkCount   = 4
)

// navFilter decides which body elements are navigation.
type navFilter struct {
	mode        NavigationExclusionMode
	body        *html.Node
	wrapper     *html.Node // single top-level <div> or <main>, if present
	linkDensity map[*html.Node]float64
}

func newNavFilter(mode NavigationExclusionMode, body *html.Node) *navFilter {
	return &navFilter{
		mode:        mode,
		body:        body,
		wrapper:     topLevelWrapper(body),
		linkDensity: make(map[*html.Node]float64),
	}
}

// topLevelWrapper finds a single structural wrapper element if one exists,
// as in <body><div id="wrapper">...</div></body>.
func topLevelWrapper(body *html.Node) *html.Node {
	var wrapper *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || isSkipped(c.Data) {
			continue
		}
		if (c.Data != "div" && c.Data != "main") || wrapper != nil {
			return nil
		}
		wrapper = c
	}
	return wrapper
}

// isTopLevel reports whether n is a direct child of body or of the single
// top-level wrapper.
func (nf *navFilter) isTopLevel(n *html.Node) bool {
	p := n.Parent
	return p != nil && (p == nf.body || (nf.wrapper != nil && p == nf.wrapper))
}

// exclude reports whether the element is navigation under the filter mode.
func (nf *navFilter) exclude(n *html.Node) bool {
	if n.Type != html.ElementNode || nf.mode == NavigationExclusionNone {
		return false
	}

	switch n.Data {
	case "nav", "aside":
		return true
	}
	switch attr(n, "role") {
	case "navigation", "complementary":
		return true
	}

	// Class, id and link density are judged only on top-level blocks.
	if !nf.isTopLevel(n) {
		return false
	}

	if nf.mode >= NavigationExclusionStandard {
		if navPattern.MatchString(attr(n, "class")) || navPattern.MatchString(attr(n, "id")) {
			return true
		}
	}

	if nf.mode >= NavigationExclusionAggressive {
		switch n.Data {
		case "div", "section", "ul", "ol":
			return nf.density(n) > maxLinkDensity && countLinks(n) >= minLinkCount
		}
	}

	return false
}

// density returns the share of n's text that sits inside links.
func (nf *navFilter) density(n *html.Node) float64 {
	if d, ok := nf.linkDensity[n]; ok {
		return d
	}
	var d float64
	if total := textLength(n); total > 0 {
		d = float64(linkTextLength(n)) / float64(total)
	}
	nf.linkDensity[n] = d
	return d
}

func textLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return len(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

func linkTextLength(n *html.Node) int {
	if n.Type == html.ElementNode && n.Data == "a" {
		return textLength(n)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += linkTextLength(c)
	}
	return total
}

func countLinks(n *html.Node) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == "a" {
		count = 1
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countLinks(c)
	}
	return count
}

// attr returns the value of an attribute, or "" if absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
