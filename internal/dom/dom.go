// Package dom holds small helpers over golang.org/x/net/html nodes: attribute
// lookup, DOM-style tag names, text content, and the whitespace rule shared by
// the import engine and the plugin parsers.
package dom

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Parse parses an HTML document and returns its <body> element. Fragments are
// wrapped by the HTML parser, so the body always exists.
func Parse(r io.Reader) (*html.Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	if body := FindElement(root, "body"); body != nil {
		return body, nil
	}
	return root, nil
}

// FindElement returns the first element named tag in depth-first order, or nil.
func FindElement(root *html.Node, tag string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && strings.EqualFold(root.Data, tag) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// TagName returns the element's name upper-cased, the way DOM nodeName reports
// HTML elements.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToUpper(n.Data)
}

// Attr returns the value of the named attribute, or "" when it is absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	return slices.ContainsFunc(n.Attr, func(attr html.Attribute) bool {
		return attr.Key == key
	})
}

// TextContent concatenates every text node under n, in document order.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	writeText(&sb, n)
	return sb.String()
}

func writeText(sb *strings.Builder, n *html.Node) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
}

// CollapseWhitespace replaces every run of tab, line feed, carriage return,
// form feed and vertical tab with a single space. Plain spaces are kept as is.
func CollapseWhitespace(s string) string {
	if !strings.ContainsAny(s, "\t\n\r\f\v") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	inRun := false
	for _, r := range s {
		switch r {
		case '\t', '\n', '\r', '\f', '\v':
			if !inRun {
				sb.WriteByte(' ')
				inRun = true
			}
		default:
			sb.WriteRune(r)
			inRun = false
		}
	}
	return sb.String()
}

// ChildElements returns n's direct element children named tag (case-insensitive).
func ChildElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, tag) {
			out = append(out, c)
		}
	}
	return out
}
