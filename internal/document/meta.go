package document

import (
	"strconv"
	"strings"
)

// Align is a block's horizontal alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign converts raw into an Align. Missing or unknown values are left.
func ParseAlign(raw string) Align {
	switch Align(strings.TrimSpace(strings.ToLower(raw))) {
	case AlignCenter:
		return AlignCenter
	case AlignRight:
		return AlignRight
	}
	return AlignLeft
}

// Meta is the per-block metadata. Order is assigned by whoever inserts the
// block into a document; imports always leave it at 0.
type Meta struct {
	Order int   `json:"order"`
	Depth int   `json:"depth"`
	Align Align `json:"align"`
}

// NewMeta builds import metadata from the raw data-meta-align and
// data-meta-depth attribute values.
func NewMeta(align, depth string) Meta {
	return Meta{
		Order: 0,
		Depth: ParseDepth(depth),
		Align: ParseAlign(align),
	}
}

// ParseDepth reads a base-10 integer prefix from raw, the way a lenient
// integer parse would: "3" and "3px" are 3, while "abc", "", negative values
// and prefixes that overflow an int are 0.
func ParseDepth(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	negative := false
	if s[0] == '+' || s[0] == '-' {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Reorder assigns sequential Meta.Order values starting at start, in slice
// order.
func Reorder(blocks []*Block, start int) {
	for i, b := range blocks {
		b.Meta.Order = start + i
	}
}

// Content is an editor document: blocks keyed by their id.
type Content map[string]*Block

// NewContent indexes blocks by id. Later blocks with a repeated id win.
func NewContent(blocks []*Block) Content {
	c := make(Content, len(blocks))
	for _, b := range blocks {
		c[b.ID] = b
	}
	return c
}
