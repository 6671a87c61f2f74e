package registry

import (
	"github.com/specialistvlad/blockpaste/internal/marks"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// Handle is one candidate plugin for a tag name.
type Handle struct {
	Type  string
	Parse plugin.ParseFunc
}

// Tables are the read-only lookup tables built from a registry. They are
// safe to share between concurrent imports.
type Tables struct {
	// Plugins are the promoted descriptors keyed by type.
	Plugins map[string]plugin.Descriptor
	// Blocks holds every plugin that forms standalone blocks.
	Blocks map[string]*BlockDescriptor
	// NodeNames maps an upper-case tag name to its candidates in
	// registration order. Lists are never empty.
	NodeNames map[string][]Handle
	Formats   map[string]marks.Format
	Shortcuts map[string]*BlockDescriptor

	blockOrder []string
}

// Candidates returns the handles registered for tag.
func (t *Tables) Candidates(tag string) []Handle {
	return t.NodeNames[tag]
}

// Block returns the block descriptor for blockType.
func (t *Tables) Block(blockType string) (*BlockDescriptor, bool) {
	b, ok := t.Blocks[blockType]
	return b, ok
}

// BlockTypes returns the block types in registration order.
func (t *Tables) BlockTypes() []string {
	return append([]string(nil), t.blockOrder...)
}

// NewTables builds every lookup table from descs, in order. The descriptors'
// parse functions must already be resolved.
func NewTables(descs []plugin.Descriptor, markDescs []marks.Descriptor) *Tables {
	promoted := BuildPlugins(descs)

	t := &Tables{
		Plugins:   make(map[string]plugin.Descriptor, len(promoted)),
		Blocks:    BuildBlocks(descs),
		NodeNames: BuildNodeNameIndex(promoted),
		Formats:   marks.BuildFormats(markDescs),
	}
	for _, p := range promoted {
		t.Plugins[p.Type] = p
	}

	seen := make(map[string]struct{}, len(t.Blocks))
	ordered := make([]*BlockDescriptor, 0, len(t.Blocks))
	for _, d := range descs {
		b, ok := t.Blocks[d.Type]
		if !ok {
			continue
		}
		if _, dup := seen[d.Type]; dup {
			continue
		}
		seen[d.Type] = struct{}{}
		t.blockOrder = append(t.blockOrder, d.Type)
		ordered = append(ordered, b)
	}
	t.Shortcuts = BuildShortcuts(ordered)
	return t
}

// BuildPlugins promotes inline element schemas across plugins.
//
// Pass one collects every inline and inlineVoid element schema from every
// plugin, keyed by element type; a later plugin overwrites an earlier one.
// Pass two gives each plugin its own elements followed by the collected
// inline schemas. An own element whose type was collected keeps its position
// but takes the collected schema. Plugins without elements contribute
// nothing and are returned unchanged. The input is not modified.
func BuildPlugins(descs []plugin.Descriptor) []plugin.Descriptor {
	var inline plugin.Elements
	for _, d := range descs {
		for _, e := range d.Elements {
			if e.NodeType.IsInline() {
				inline = inline.With(e)
			}
		}
	}

	out := make([]plugin.Descriptor, len(descs))
	for i, d := range descs {
		p := d.Clone()
		if len(p.Elements) > 0 {
			for _, e := range inline {
				p.Elements = p.Elements.With(e)
			}
		}
		out[i] = p
	}
	return out
}

// BuildBlocks returns the block descriptors keyed by plugin type. Plugins
// whose root element is inline or inlineVoid, and plugins with no root at
// all, are left out. When a type is declared twice the later one wins.
func BuildBlocks(descs []plugin.Descriptor) map[string]*BlockDescriptor {
	promoted := BuildPlugins(descs)
	blocks := make(map[string]*BlockDescriptor, len(descs))

	for i, d := range descs {
		root, ok := d.RootElement()
		if !ok || root.NodeType.IsInline() {
			continue
		}
		p := promoted[i]
		blocks[d.Type] = &BlockDescriptor{
			Type:            d.Type,
			Elements:        p.Elements,
			HasCustomEditor: d.CustomEditor,
			Options: BlockOptions{
				Display:     p.Options.Display,
				Placeholder: p.Options.Placeholder,
				Align:       p.Options.Align,
				Shortcuts:   p.Options.Shortcuts,
			},
			root: root,
		}
	}
	return blocks
}

// BuildNodeNameIndex maps every declared tag name to its candidate handles,
// in registration order.
func BuildNodeNameIndex(descs []plugin.Descriptor) map[string][]Handle {
	index := make(map[string][]Handle)
	for _, d := range descs {
		if d.Deserialize == nil {
			continue
		}
		for _, name := range d.Deserialize.NodeNames {
			index[name] = append(index[name], Handle{Type: d.Type, Parse: d.Deserialize.Parse})
		}
	}
	return index
}

// BuildShortcuts maps every block shortcut to its block. A shortcut shared
// by several blocks resolves to the last one.
func BuildShortcuts(blocks []*BlockDescriptor) map[string]*BlockDescriptor {
	shortcuts := make(map[string]*BlockDescriptor)
	for _, b := range blocks {
		for _, s := range b.Options.Shortcuts {
			shortcuts[s] = b
		}
	}
	return shortcuts
}
