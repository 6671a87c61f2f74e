// Package plugin defines the descriptor a content-type provider registers:
// its element schemas, block options, and the optional HTML parser that
// claims tag names during an import.
//
// Descriptors are values. Once handed to a registry they are treated as
// read-only; the registry builders derive new descriptors instead of mutating
// the ones they were given.
package plugin

import (
	"errors"
	"maps"

	"github.com/specialistvlad/blockpaste/internal/document"
	"golang.org/x/net/html"
)

// ErrNoRootElement is returned when a block plugin has no resolvable root
// element schema.
var ErrNoRootElement = errors.New("plugin has no root element")

// ElementSchema describes one node kind inside a block's tree.
type ElementSchema struct {
	Type     string
	NodeType document.NodeType
	// AsRoot marks the element that anchors the block when a plugin declares
	// more than one element.
	AsRoot bool
	// Props are the default props copied onto elements of this type.
	Props map[string]any
}

// Elements is an ordered set of element schemas keyed by Type.
type Elements []ElementSchema

// Get returns the schema for elementType.
func (es Elements) Get(elementType string) (ElementSchema, bool) {
	for _, e := range es {
		if e.Type == elementType {
			return e, true
		}
	}
	return ElementSchema{}, false
}

// With returns a copy of es with e set. An existing schema of the same type
// is replaced in place; a new one is appended.
func (es Elements) With(e ElementSchema) Elements {
	out := make(Elements, len(es), len(es)+1)
	copy(out, es)
	for i := range out {
		if out[i].Type == e.Type {
			out[i] = e
			return out
		}
	}
	return append(out, e)
}

// Root resolves the element that anchors a block: the only element when there
// is one, else the element marked AsRoot, else the first element that is not
// inline.
func (es Elements) Root() (ElementSchema, bool) {
	if len(es) == 1 {
		return es[0], true
	}
	for _, e := range es {
		if e.AsRoot {
			return e, true
		}
	}
	for _, e := range es {
		if !e.NodeType.IsInline() {
			return e, true
		}
	}
	return ElementSchema{}, false
}

// Display is the human-facing name of a plugin in menus.
type Display struct {
	Title       string
	Description string
}

// MaxSizes bounds resizable media.
type MaxSizes struct {
	MaxWidth  int
	MaxHeight int
}

// Options are the plugin's editor options.
type Options struct {
	Display     Display
	Placeholder string
	Align       document.Align
	Shortcuts   []string
	MaxSizes    *MaxSizes
}

// Result is what a custom parse function produced. At most one field is set;
// the zero Result means the parser had no opinion and the default block is
// built.
type Result struct {
	// Element is either an inline element to be merged into the parent, or a
	// replacement for the block's root element.
	Element *document.Element
	// Blocks, when non-nil, are the final blocks for the matched node.
	Blocks []*document.Block
}

// IsZero reports whether the parser produced nothing.
func (r Result) IsZero() bool {
	return r.Element == nil && r.Blocks == nil
}

// ParseFunc is a plugin's custom HTML parser. It receives the matched element
// unprocessed. Errors are not recovered by the engine; they abort the import.
type ParseFunc func(el *html.Node) (Result, error)

// Deserialize declares which tags a plugin claims and how it parses them.
type Deserialize struct {
	// NodeNames are the upper-case tag names the plugin claims.
	NodeNames []string
	// Parse is optional.
	Parse ParseFunc
	// ParseHandler names a handler registered in Go; the registry resolves it
	// into Parse.
	ParseHandler string
}

// Descriptor is a registered plugin.
type Descriptor struct {
	Type         string
	Elements     Elements
	Options      Options
	CustomEditor bool
	Deserialize  *Deserialize
	// Source is where the descriptor was declared, for error messages.
	Source string
}

// RootElement resolves the plugin's root element schema.
func (d Descriptor) RootElement() (ElementSchema, bool) {
	return d.Elements.Root()
}

// IsInline reports whether the plugin only provides inline elements and so
// never forms a standalone block.
func (d Descriptor) IsInline() bool {
	if root, ok := d.RootElement(); ok {
		return root.NodeType.IsInline()
	}
	// Root resolution only fails for an empty set or an all-inline one.
	return len(d.Elements) > 0
}

// Clone returns a deep enough copy that the builders can rewrite elements
// and options without touching the original.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.Elements != nil {
		out.Elements = make(Elements, len(d.Elements))
		for i, e := range d.Elements {
			e.Props = maps.Clone(e.Props)
			out.Elements[i] = e
		}
	}
	if d.Options.Shortcuts != nil {
		out.Options.Shortcuts = append([]string(nil), d.Options.Shortcuts...)
	}
	if d.Options.MaxSizes != nil {
		sizes := *d.Options.MaxSizes
		out.Options.MaxSizes = &sizes
	}
	if d.Deserialize != nil {
		des := *d.Deserialize
		des.NodeNames = append([]string(nil), d.Deserialize.NodeNames...)
		out.Deserialize = &des
	}
	return out
}
