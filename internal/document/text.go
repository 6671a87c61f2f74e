package document

// Mark types that can be set on a Text leaf.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkCode      = "code"
)

// Text is a leaf of text with boolean formatting marks.
type Text struct {
	Text      string `json:"text"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Strike    bool   `json:"strike,omitempty"`
	Code      bool   `json:"code,omitempty"`
}

func (Text) isNode() {}

// EmptyText is the single empty leaf used to keep an element's children non-empty.
func EmptyText() Text {
	return Text{}
}

// KnownMark reports whether mark is a mark type Text can carry.
func KnownMark(mark string) bool {
	switch mark {
	case MarkBold, MarkItalic, MarkUnderline, MarkStrike, MarkCode:
		return true
	}
	return false
}

// Marked returns a copy of t with mark set to on. Unknown marks leave t unchanged.
func (t Text) Marked(mark string, on bool) Text {
	switch mark {
	case MarkBold:
		t.Bold = on
	case MarkItalic:
		t.Italic = on
	case MarkUnderline:
		t.Underline = on
	case MarkStrike:
		t.Strike = on
	case MarkCode:
		t.Code = on
	}
	return t
}

// HasMark reports whether mark is set on t.
func (t Text) HasMark(mark string) bool {
	switch mark {
	case MarkBold:
		return t.Bold
	case MarkItalic:
		return t.Italic
	case MarkUnderline:
		return t.Underline
	case MarkStrike:
		return t.Strike
	case MarkCode:
		return t.Code
	}
	return false
}
