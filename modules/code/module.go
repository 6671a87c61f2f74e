// Package code provides the code block. The block keeps the raw source text,
// whitespace included, and records its language.
package code

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

// Defaults applied when the source carries no language or theme.
const (
	DefaultLanguage = "javascript"
	DefaultTheme    = "VSCode"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the code parse handler and queues the manifest.
func (m *Module) Register(r *registry.Registry) {
	r.Handlers().RegisterHandler("ParseCode", ParseCode)
	r.RegisterManifest("modules/code/manifest.hcl", manifest)
}

// ParseCode builds the code root element from a <pre>. The text is taken
// verbatim; a trailing newline is dropped.
func ParseCode(el *html.Node) (plugin.Result, error) {
	source := strings.TrimSuffix(dom.TextContent(el), "\n")
	props := map[string]any{
		document.PropNodeType: string(document.NodeTypeVoid),
		"language":            Language(el),
		"theme":               theme(el),
	}
	return plugin.Result{Element: document.NewElement("code", props, document.Text{Text: source})}, nil
}

// Language reads the language from data-language on the <pre> or its
// <code> child, then from a "language-xxx" or "lang-xxx" class.
func Language(el *html.Node) string {
	nodes := []*html.Node{el}
	nodes = append(nodes, dom.ChildElements(el, "code")...)

	for _, n := range nodes {
		if lang := strings.TrimSpace(dom.Attr(n, "data-language")); lang != "" {
			return strings.ToLower(lang)
		}
	}
	for _, n := range nodes {
		for _, class := range strings.Fields(dom.Attr(n, "class")) {
			for _, prefix := range []string{"language-", "lang-"} {
				if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
					return strings.ToLower(lang)
				}
			}
		}
	}
	return DefaultLanguage
}

func theme(el *html.Node) string {
	if t := strings.TrimSpace(dom.Attr(el, "data-theme")); t != "" {
		return t
	}
	return DefaultTheme
}
