// Package marks maps inline HTML tags to text marks and builds the
// mark-type → formatting table the editor exposes.
package marks

import (
	"strings"

	"github.com/specialistvlad/blockpaste/internal/document"
)

// tagTable maps an upper-case tag name to the mark it applies.
var tagTable = map[string]string{
	"B":      document.MarkBold,
	"STRONG": document.MarkBold,
	"I":      document.MarkItalic,
	"EM":     document.MarkItalic,
	"U":      document.MarkUnderline,
	"S":      document.MarkStrike,
	"CODE":   document.MarkCode,
}

// Lookup returns the mark applied by tag. The tag is matched case-insensitively.
func Lookup(tag string) (string, bool) {
	mark, ok := tagTable[strings.ToUpper(tag)]
	return mark, ok
}

// Descriptor declares a mark and its keyboard shortcut.
type Descriptor struct {
	Type   string
	Hotkey string
	Source string
}

// Format is the formatting API for one mark type.
type Format struct {
	Type   string
	Hotkey string
}

// Apply sets the mark on every leaf in children, descending into nested
// elements. Elements are modified in place.
func (f Format) Apply(children []document.Node) {
	for i, child := range children {
		switch c := child.(type) {
		case document.Text:
			children[i] = c.Marked(f.Type, true)
		case *document.Element:
			f.Apply(c.Children)
		}
	}
}

// BuildFormats builds the mark-type → Format table. Later descriptors of the
// same type replace earlier ones.
func BuildFormats(descs []Descriptor) map[string]Format {
	formats := make(map[string]Format, len(descs))
	for _, d := range descs {
		formats[d.Type] = Format{Type: d.Type, Hotkey: d.Hotkey}
	}
	return formats
}
