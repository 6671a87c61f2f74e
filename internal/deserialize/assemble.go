package deserialize

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/plugin"
	"github.com/specialistvlad/blockpaste/internal/registry"
	"golang.org/x/net/html"
)

// Data attributes carrying block metadata on the source element.
const (
	AttrMetaAlign = "data-meta-align"
	AttrMetaDepth = "data-meta-depth"
)

// assemble builds what one candidate plugin makes of el. ok is false when
// the plugin contributes nothing, which happens for an inline plugin whose
// parser declined the element; the walker then passes el's children through
// unless another candidate produced something.
func (e *Engine) assemble(ctx context.Context, h registry.Handle, el *html.Node, children []Fragment) (Fragment, bool, error) {
	var custom *document.Element

	if h.Parse != nil {
		res, err := h.Parse(el)
		if err != nil {
			return Fragment{}, false, fmt.Errorf("plugin '%s' failed to parse <%s>: %w", h.Type, strings.ToLower(dom.TagName(el)), err)
		}
		if res.Element != nil && res.Element.IsInline() {
			return ElementFragment(res.Element), true, nil
		}
		if res.Blocks != nil {
			return blocksGroup(res.Blocks), true, nil
		}
		custom = res.Element
	}

	block, ok := e.tables.Block(h.Type)
	if !ok {
		if p, known := e.tables.Plugins[h.Type]; known && p.IsInline() {
			ctxlog.FromContext(ctx).Debug("Inline plugin produced nothing for element.", "plugin", h.Type, "tag", dom.TagName(el))
			return Fragment{}, false, nil
		}
		return Fragment{}, false, fmt.Errorf("plugin '%s': %w", h.Type, plugin.ErrNoRootElement)
	}

	var root *document.Element
	if custom != nil {
		root = custom
		if len(root.Children) == 0 {
			root.Children = []document.Node{document.EmptyText()}
		}
	} else {
		root = block.NewRootElement(normalizeChildren(children))
	}

	meta := document.NewMeta(dom.Attr(el, AttrMetaAlign), dom.Attr(el, AttrMetaDepth))
	return BlockFragment(document.NewBlock(h.Type, root, meta)), true, nil
}

func normalizeChildren(children []Fragment) []document.Node {
	out := make([]document.Node, 0, len(children))
	for _, c := range children {
		out = append(out, normalizeChild(c))
	}
	return out
}

// normalizeChild converts a fragment into a child of a block's root element.
// Groups keep only their first item's text, and a block pasted inside
// another block is flattened to the text of its root's direct text children.
func normalizeChild(f Fragment) document.Node {
	switch f.Kind {
	case KindText:
		return document.Text{Text: f.Text}
	case KindElement:
		return f.Element
	case KindGroup:
		if len(f.Group) == 0 {
			return document.EmptyText()
		}
		return document.Text{Text: f.Group[0].LeafText()}
	case KindMark:
		if f.Leaf.Text != "" {
			return f.Leaf
		}
	case KindBlock:
		return document.Text{Text: f.Block.PlainText()}
	}
	return document.EmptyText()
}
