package media

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/plugin"
	"golang.org/x/net/html"
)

// ParseImage builds the image root element from an <img>. Images without a
// src are declined and become an empty image block.
func ParseImage(el *html.Node) (plugin.Result, error) {
	src := strings.TrimSpace(dom.Attr(el, "src"))
	if src == "" {
		return plugin.Result{}, nil
	}

	props := map[string]any{
		document.PropNodeType: string(document.NodeTypeVoid),
		"src":                 src,
		"alt":                 nullable(dom.Attr(el, "alt")),
		"srcSet":              nullable(dom.Attr(el, "srcset")),
		"fit":                 "contain",
		"sizes": map[string]any{
			"width":  dimension(el, "width", DefaultWidth),
			"height": dimension(el, "height", DefaultImageHeight),
		},
	}
	return plugin.Result{Element: document.NewElement("image", props)}, nil
}

// dimension reads a pixel size from the named attribute, falling back to the
// inline style, then to def.
func dimension(el *html.Node, name string, def int) int {
	if n, ok := pixels(dom.Attr(el, name)); ok {
		return n
	}
	for _, decl := range strings.Split(dom.Attr(el, "style"), ";") {
		key, value, found := strings.Cut(decl, ":")
		if found && strings.EqualFold(strings.TrimSpace(key), name) {
			if n, ok := pixels(value); ok {
				return n
			}
		}
	}
	return def
}

func pixels(raw string) (int, bool) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "px")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
