// Package link provides the inline link and mention elements.
package link

import (
	_ "embed"
	"strings"

	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/plugin"
	"github.com/specialistvlad/blockpaste/internal/registry"
	"golang.org/x/net/html"
)

//go:embed manifest.hcl
var manifest []byte

// AttrMentionID marks an anchor as a mention of the given entity.
const AttrMentionID = "data-mention-id"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the link and mention parse handlers and queues the
// manifest that refers to them.
func (m *Module) Register(r *registry.Registry) {
	r.Handlers().RegisterHandler("ParseLink", ParseLink)
	r.Handlers().RegisterHandler("ParseMention", ParseMention)
	r.RegisterManifest("modules/link/manifest.hcl", manifest)
}

// ParseLink turns an anchor with an href into an inline link element.
// Mentions and anchors without an href are declined.
func ParseLink(el *html.Node) (plugin.Result, error) {
	href := strings.TrimSpace(dom.Attr(el, "href"))
	if href == "" || dom.HasAttr(el, AttrMentionID) {
		return plugin.Result{}, nil
	}

	target := dom.Attr(el, "target")
	if target == "" {
		target = "_self"
	}
	props := map[string]any{
		document.PropNodeType: string(document.NodeTypeInline),
		"url":                 href,
		"target":              target,
		"rel":                 dom.Attr(el, "rel"),
		"title":               dom.Attr(el, "title"),
	}
	return plugin.Result{Element: document.NewElement("link", props, anchorText(el))}, nil
}

// ParseMention turns an anchor carrying data-mention-id into an inline
// mention element. Other anchors are declined.
func ParseMention(el *html.Node) (plugin.Result, error) {
	id := strings.TrimSpace(dom.Attr(el, AttrMentionID))
	if id == "" {
		return plugin.Result{}, nil
	}

	name := strings.TrimPrefix(strings.TrimSpace(dom.TextContent(el)), "@")
	props := map[string]any{
		document.PropNodeType: string(document.NodeTypeInline),
		"id":                  id,
		"name":                name,
	}
	if href := dom.Attr(el, "href"); href != "" {
		props["url"] = href
	}
	return plugin.Result{Element: document.NewElement("mention", props, document.EmptyText())}, nil
}

func anchorText(el *html.Node) document.Text {
	return document.Text{Text: dom.CollapseWhitespace(dom.TextContent(el))}
}
