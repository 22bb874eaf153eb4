package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// The selector syntax is the small subset the resort pages need: a selector is
// a space-separated chain of descendant steps, each step matching on tag,
// ".class", "#id", or "tag.class". Anything fancier belongs in a custom
// extraction function.

type selectorStep struct {
	tag   string
	class string
	id    string
}

func parseSelector(sel string) []selectorStep {
	var steps []selectorStep
	for _, raw := range strings.Fields(sel) {
		var step selectorStep
		rest := raw
		if i := strings.IndexByte(rest, '#'); i >= 0 {
			step.tag = rest[:i]
			step.id = rest[i+1:]
		} else if i := strings.IndexByte(rest, '.'); i >= 0 {
			step.tag = rest[:i]
			step.class = rest[i+1:]
		} else {
			step.tag = rest
		}
		steps = append(steps, step)
	}
	return steps
}

func (s selectorStep) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	if s.class != "" && !hasClass(n, s.class) {
		return false
	}
	if s.id != "" && getAttr(n, "id") != s.id {
		return false
	}
	return true
}

// selectFirst returns the first node matching the selector chain, or nil
func selectFirst(root *html.Node, sel string) *html.Node {
	steps := parseSelector(sel)
	if len(steps) == 0 {
		return nil
	}
	matches := []*html.Node{root}
	for _, step := range steps {
		var next []*html.Node
		for _, scope := range matches {
			next = append(next, findAll(scope, step.matches)...)
		}
		if len(next) == 0 {
			return nil
		}
		matches = next
	}
	return matches[0]
}

// findAll walks the subtree collecting nodes that satisfy the predicate
func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node != n && predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return results
}

// nodeText returns the trimmed text content of a node's subtree
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if part := nodeText(c); part != "" {
			if buf.Len() > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(part)
		}
	}
	return buf.String()
}

func hasClass(n *html.Node, className string) bool {
	for _, class := range strings.Fields(getAttr(n, "class")) {
		if class == className {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
