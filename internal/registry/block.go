package registry

import (
	"maps"

	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// BlockOptions are the options a block exposes to the editor. Media size
// limits and other fetch-time options stay on the plugin descriptor.
type BlockOptions struct {
	Display     plugin.Display `json:"display"`
	Placeholder string         `json:"placeholder,omitempty"`
	Align       document.Align `json:"align,omitempty"`
	Shortcuts   []string       `json:"shortcuts,omitempty"`
}

// BlockDescriptor is the block-level view of a plugin that forms standalone
// blocks.
type BlockDescriptor struct {
	Type string `json:"type"`
	// Elements are the plugin's own elements followed by every promoted
	// inline element schema.
	Elements        plugin.Elements `json:"-"`
	HasCustomEditor bool            `json:"hasCustomEditor"`
	Options         BlockOptions    `json:"options"`

	root plugin.ElementSchema
}

// RootElement returns the schema that anchors blocks of this type. It is
// resolved from the plugin's declared elements, before inline promotion.
func (b *BlockDescriptor) RootElement() plugin.ElementSchema {
	return b.root
}

// IsVoid reports whether the root element never owns rich text.
func (b *BlockDescriptor) IsVoid() bool {
	return b.root.NodeType == document.NodeTypeVoid
}

// NewRootElement builds a fresh root element for this block type. Props are
// the schema defaults with nodeType set. A void root without a custom editor
// ignores children; an empty children list gets one empty Text.
func (b *BlockDescriptor) NewRootElement(children []document.Node) *document.Element {
	props := map[string]any{document.PropNodeType: string(document.NodeTypeBlock)}
	maps.Copy(props, b.root.Props)
	if b.root.NodeType != "" {
		props[document.PropNodeType] = string(b.root.NodeType)
	}

	if b.IsVoid() && !b.HasCustomEditor {
		children = nil
	}
	if len(children) == 0 {
		children = []document.Node{document.EmptyText()}
	}
	return document.NewElement(b.root.Type, props, children...)
}
