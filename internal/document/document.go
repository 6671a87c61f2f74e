package document

import (
	"strings"

	"github.com/google/uuid"
)

// NodeType classifies an element schema inside a block's tree.
type NodeType string

const (
	NodeTypeBlock      NodeType = "block"
	NodeTypeInline     NodeType = "inline"
	NodeTypeInlineVoid NodeType = "inlineVoid"
	NodeTypeVoid       NodeType = "void"
)

// PropNodeType is the props key that holds an element's NodeType.
const PropNodeType = "nodeType"

// IsInline reports whether elements of this type live inside other blocks
// rather than anchoring one.
func (t NodeType) IsInline() bool {
	return t == NodeTypeInline || t == NodeTypeInlineVoid
}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeBlock, NodeTypeInline, NodeTypeInlineVoid, NodeTypeVoid:
		return true
	}
	return false
}

// Node is a child of an Element: either another *Element or a Text leaf.
type Node interface {
	isNode()
}

// Element is a node in a block's content tree.
type Element struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Children []Node         `json:"children"`
	Props    map[string]any `json:"props,omitempty"`
}

func (*Element) isNode() {}

// NewElement returns an element with a fresh id.
func NewElement(elementType string, props map[string]any, children ...Node) *Element {
	return &Element{
		ID:       NewID(),
		Type:     elementType,
		Children: children,
		Props:    props,
	}
}

// NodeType returns the node type recorded in the element's props, or "" when
// none is set.
func (e *Element) NodeType() NodeType {
	if e == nil || e.Props == nil {
		return ""
	}
	switch v := e.Props[PropNodeType].(type) {
	case NodeType:
		return v
	case string:
		return NodeType(v)
	}
	return ""
}

// IsInline reports whether the element is an inline element.
func (e *Element) IsInline() bool {
	return e.NodeType() == NodeTypeInline
}

// Text concatenates the text of the element's direct Text children. Nested
// elements contribute nothing.
func (e *Element) Text() string {
	var sb strings.Builder
	for _, child := range e.Children {
		if t, ok := child.(Text); ok {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

// Block is the top-level document unit.
type Block struct {
	ID    string     `json:"id"`
	Type  string     `json:"type"`
	Value []*Element `json:"value"`
	Meta  Meta       `json:"meta"`
}

// NewBlock wraps root into a block with a fresh id.
func NewBlock(blockType string, root *Element, meta Meta) *Block {
	return &Block{
		ID:    NewID(),
		Type:  blockType,
		Value: []*Element{root},
		Meta:  meta,
	}
}

// Root returns the block's root element, or nil for a malformed block.
func (b *Block) Root() *Element {
	if b == nil || len(b.Value) == 0 {
		return nil
	}
	return b.Value[0]
}

// PlainText is the concatenated text of the root element's direct Text
// children.
func (b *Block) PlainText() string {
	root := b.Root()
	if root == nil {
		return ""
	}
	return root.Text()
}

// NewID returns a fresh identity for an element or block. It is safe for
// concurrent use.
func NewID() string {
	return uuid.NewString()
}
