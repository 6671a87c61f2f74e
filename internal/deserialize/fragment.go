package deserialize

import "github.com/specialistvlad/blockpaste/internal/document"

// Kind discriminates a Fragment.
type Kind int

const (
	// KindText is plain text from a text node or a line break.
	KindText Kind = iota + 1
	// KindMark is a text leaf produced by a mark tag.
	KindMark
	// KindElement is an inline element returned by a plugin parser.
	KindElement
	// KindBlock is a finished block.
	KindBlock
	// KindGroup is a parser's block list. The walker splices its items into
	// the parent's child list.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMark:
		return "mark"
	case KindElement:
		return "element"
	case KindBlock:
		return "block"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

// Fragment is the result of deserializing one node. Exactly the field that
// matches Kind is set.
type Fragment struct {
	Kind    Kind
	Text    string
	Leaf    document.Text
	Element *document.Element
	Block   *document.Block
	Group   []Fragment
}

// TextFragment wraps plain text.
func TextFragment(s string) Fragment {
	return Fragment{Kind: KindText, Text: s}
}

// MarkFragment wraps a marked text leaf.
func MarkFragment(leaf document.Text) Fragment {
	return Fragment{Kind: KindMark, Leaf: leaf}
}

// ElementFragment wraps an inline element.
func ElementFragment(el *document.Element) Fragment {
	return Fragment{Kind: KindElement, Element: el}
}

// BlockFragment wraps a block.
func BlockFragment(b *document.Block) Fragment {
	return Fragment{Kind: KindBlock, Block: b}
}

// GroupFragment wraps a list of fragments.
func GroupFragment(items []Fragment) Fragment {
	return Fragment{Kind: KindGroup, Group: items}
}

// blocksGroup turns a parser's block list into a group of block fragments.
func blocksGroup(blocks []*document.Block) Fragment {
	items := make([]Fragment, 0, len(blocks))
	for _, b := range blocks {
		if b != nil {
			items = append(items, BlockFragment(b))
		}
	}
	return GroupFragment(items)
}

// LeafText is the text a fragment contributes when read as a leaf: the text
// of a Text or Mark fragment, and "" for everything else.
func (f Fragment) LeafText() string {
	switch f.Kind {
	case KindText:
		return f.Text
	case KindMark:
		return f.Leaf.Text
	}
	return ""
}
