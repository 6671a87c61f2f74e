package deserialize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/plugin"
	"github.com/specialistvlad/blockpaste/internal/registry"
	"github.com/specialistvlad/blockpaste/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var ignoreIDs = cmp.Options{
	cmpopts.IgnoreFields(document.Element{}, "ID"),
	cmpopts.IgnoreFields(document.Block{}, "ID"),
}

func blockPlugin(pluginType, elementType string, nodeType document.NodeType, tags ...string) plugin.Descriptor {
	return plugin.Descriptor{
		Type:        pluginType,
		Elements:    plugin.Elements{{Type: elementType, NodeType: nodeType}},
		Deserialize: &plugin.Deserialize{NodeNames: tags},
	}
}

func parseLink(el *html.Node) (plugin.Result, error) {
	href := dom.Attr(el, "href")
	if href == "" {
		return plugin.Result{}, nil
	}
	return plugin.Result{Element: document.NewElement("link",
		map[string]any{document.PropNodeType: string(document.NodeTypeInline), "url": href},
		document.Text{Text: dom.TextContent(el)},
	)}, nil
}

func linkPlugin() plugin.Descriptor {
	return plugin.Descriptor{
		Type:        "Link",
		Elements:    plugin.Elements{{Type: "link", NodeType: document.NodeTypeInline}},
		Deserialize: &plugin.Deserialize{NodeNames: []string{"A"}, Parse: parseLink},
	}
}

func newEngine(t *testing.T, descs []plugin.Descriptor, opts ...Option) *Engine {
	t.Helper()
	return New(registry.NewTables(descs, nil), opts...)
}

func defaultEngine(t *testing.T) *Engine {
	return newEngine(t, []plugin.Descriptor{
		blockPlugin("Paragraph", "paragraph", document.NodeTypeBlock, "P"),
		blockPlugin("HeadingOne", "heading-one", document.NodeTypeBlock, "H1"),
		blockPlugin("Blockquote", "blockquote", document.NodeTypeBlock, "BLOCKQUOTE"),
		blockPlugin("Divider", "divider", document.NodeTypeVoid, "HR", "DIV"),
		linkPlugin(),
	})
}

func importHTML(t *testing.T, e *Engine, src string) []*document.Block {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	blocks, err := e.DeserializeHTML(ctx, strings.NewReader(src))
	require.NoError(t, err)
	return blocks
}

func paragraph(children ...document.Node) *document.Block {
	return &document.Block{
		Type: "Paragraph",
		Value: []*document.Element{{
			Type:     "paragraph",
			Props:    map[string]any{document.PropNodeType: "block"},
			Children: children,
		}},
		Meta: document.Meta{Align: document.AlignLeft},
	}
}

func TestDeserialize_ParagraphWithMark(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `<p>Hello <b>world</b></p>`)

	want := []*document.Block{paragraph(
		document.Text{Text: "Hello "},
		document.Text{Text: "world", Bold: true},
	)}
	if diff := cmp.Diff(want, blocks, ignoreIDs); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, blocks[0].ID)
	assert.NotEmpty(t, blocks[0].Root().ID)
	assert.NotEqual(t, blocks[0].ID, blocks[0].Root().ID)
}

func TestDeserialize_UnknownContainerIsTransparent(t *testing.T) {
	e := defaultEngine(t)
	wrapped := importHTML(t, e, `<section><p>X</p></section>`)
	bare := importHTML(t, e, `<p>X</p>`)

	require.Len(t, wrapped, 1)
	if diff := cmp.Diff(bare, wrapped, ignoreIDs); diff != "" {
		t.Errorf("pass-through mismatch (-bare +wrapped):\n%s", diff)
	}
}

func TestDeserialize_RootTypeMatchesSchema(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `<h1>Title</h1><blockquote>Quote</blockquote><p>Body</p>`)
	require.Len(t, blocks, 3)

	got := make([]string, len(blocks))
	for i, b := range blocks {
		got[i] = b.Type + "/" + b.Root().Type
	}
	assert.Equal(t, []string{"HeadingOne/heading-one", "Blockquote/blockquote", "Paragraph/paragraph"}, got)
}

func TestDeserialize_MarkTags(t *testing.T) {
	cases := map[string]document.Text{
		"B":      {Text: "hello", Bold: true},
		"STRONG": {Text: "hello", Bold: true},
		"I":      {Text: "hello", Italic: true},
		"EM":     {Text: "hello", Italic: true},
		"U":      {Text: "hello", Underline: true},
		"S":      {Text: "hello", Strike: true},
		"CODE":   {Text: "hello", Code: true},
	}
	e := defaultEngine(t)
	for tag, want := range cases {
		t.Run(tag, func(t *testing.T) {
			blocks := importHTML(t, e, "<p><"+tag+">hello</"+tag+"></p>")
			require.Len(t, blocks, 1)
			assert.Equal(t, []document.Node{want}, blocks[0].Root().Children)
		})
	}
}

func TestDeserialize_NestedMarksFlatten(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), "<p><b>bold <i>and\n\titalic</i></b></p>")
	require.Len(t, blocks, 1)
	assert.Equal(t, []document.Node{document.Text{Text: "bold and italic", Bold: true}}, blocks[0].Root().Children)
}

func TestDeserialize_WhitespaceCollapse(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), "<p>a\t\tb\n\nc</p>")
	require.Len(t, blocks, 1)
	assert.Equal(t, "a b c", blocks[0].PlainText())
	assert.Equal(t, "a b c", dom.CollapseWhitespace(blocks[0].PlainText()))
}

func TestDeserialize_LineBreak(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), "<p>one<br>two</p>")
	require.Len(t, blocks, 1)
	assert.Equal(t, []document.Node{
		document.Text{Text: "one"},
		document.Text{Text: "\n"},
		document.Text{Text: "two"},
	}, blocks[0].Root().Children)
}

func TestDeserialize_CommentsAreDropped(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), "<p>a<!-- note -->b</p><!-- top -->")
	require.Len(t, blocks, 1)
	assert.Equal(t, []document.Node{document.Text{Text: "a"}, document.Text{Text: "b"}}, blocks[0].Root().Children)
}

func TestDeserialize_StrayTopLevelContentDropped(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), "loose text <b>bold</b><span>span</span>")
	assert.Empty(t, blocks)
}

func TestDeserialize_VoidRoot(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `<div>ignored <b>content</b></div><hr>`)
	require.Len(t, blocks, 2)
	for _, b := range blocks {
		assert.Equal(t, "Divider", b.Type)
		assert.Equal(t, []document.Node{document.Text{}}, b.Root().Children)
		assert.Equal(t, document.NodeTypeVoid, b.Root().NodeType())
	}
}

func TestDeserialize_VoidRootWithCustomEditorKeepsChildren(t *testing.T) {
	embed := blockPlugin("Embed", "embed", document.NodeTypeVoid, "FIGURE")
	embed.CustomEditor = true
	blocks := importHTML(t, newEngine(t, []plugin.Descriptor{embed}), `<figure>caption</figure>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, []document.Node{document.Text{Text: "caption"}}, blocks[0].Root().Children)
}

func TestDeserialize_EmptyElementGetsEmptyText(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `<p></p>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, []document.Node{document.Text{}}, blocks[0].Root().Children)
}

func TestDeserialize_Meta(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `
<p data-meta-depth="3">a</p>
<p data-meta-depth="abc" data-meta-align="center">b</p>
<p data-meta-depth="-2" data-meta-align="sideways">c</p>
<p data-meta-depth="7px" data-meta-align="right">d</p>`)
	require.Len(t, blocks, 4)

	assert.Equal(t, document.Meta{Order: 0, Depth: 3, Align: document.AlignLeft}, blocks[0].Meta)
	assert.Equal(t, document.Meta{Order: 0, Depth: 0, Align: document.AlignCenter}, blocks[1].Meta)
	assert.Equal(t, document.Meta{Order: 0, Depth: 0, Align: document.AlignLeft}, blocks[2].Meta)
	assert.Equal(t, document.Meta{Order: 0, Depth: 7, Align: document.AlignRight}, blocks[3].Meta)
}

func TestDeserialize_AmbiguousTagProducesOneBlockPerPlugin(t *testing.T) {
	e := newEngine(t, []plugin.Descriptor{
		blockPlugin("Callout", "callout", document.NodeTypeBlock, "BLOCKQUOTE"),
		blockPlugin("Blockquote", "blockquote", document.NodeTypeBlock, "BLOCKQUOTE"),
	})
	blocks := importHTML(t, e, `<blockquote data-meta-depth="1">Q</blockquote>`)

	require.Len(t, blocks, 2)
	assert.Equal(t, "Callout", blocks[0].Type)
	assert.Equal(t, "Blockquote", blocks[1].Type)
	for _, b := range blocks {
		assert.Equal(t, "Q", b.PlainText())
		assert.Equal(t, 1, b.Meta.Depth)
	}
	assert.NotEqual(t, blocks[0].Root().ID, blocks[1].Root().ID)
}

func TestDeserialize_InlineParserMergesIntoParent(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `<p>see <a href="https://example.com">here</a>.</p>`)
	require.Len(t, blocks, 1)

	children := blocks[0].Root().Children
	require.Len(t, children, 3)
	assert.Equal(t, document.Text{Text: "see "}, children[0])
	link, ok := children[1].(*document.Element)
	require.True(t, ok)
	assert.Equal(t, "link", link.Type)
	assert.Equal(t, "https://example.com", link.Props["url"])
	assert.Equal(t, document.Text{Text: "."}, children[2])
}

func TestDeserialize_DeclinedInlineTagPassesChildrenThrough(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `<p>Go <a name="x">here</a> now</p>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, []document.Node{
		document.Text{Text: "Go "},
		document.Text{Text: "here"},
		document.Text{Text: " now"},
	}, blocks[0].Root().Children)
	assert.Equal(t, "Go here now", blocks[0].PlainText())
}

func TestDeserialize_AllInlineCandidatesDeclinePassesChildrenThrough(t *testing.T) {
	mention := plugin.Descriptor{
		Type:     "Mention",
		Elements: plugin.Elements{{Type: "mention", NodeType: document.NodeTypeInline}},
		Deserialize: &plugin.Deserialize{NodeNames: []string{"A"}, Parse: func(*html.Node) (plugin.Result, error) {
			return plugin.Result{}, nil
		}},
	}
	e := newEngine(t, []plugin.Descriptor{
		blockPlugin("Paragraph", "paragraph", document.NodeTypeBlock, "P"),
		linkPlugin(),
		mention,
	})

	blocks := importHTML(t, e, `<p>see <a id="top"><b>this</b></a></p>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, []document.Node{
		document.Text{Text: "see "},
		document.Text{Text: "this", Bold: true},
	}, blocks[0].Root().Children)
}

func TestDeserialize_ParserBlockListIsSpliced(t *testing.T) {
	list := blockPlugin("List", "list", document.NodeTypeBlock, "UL")
	list.Deserialize.Parse = func(el *html.Node) (plugin.Result, error) {
		var out []*document.Block
		for _, li := range dom.ChildElements(el, "li") {
			root := document.NewElement("list-item", nil, document.Text{Text: dom.TextContent(li)})
			out = append(out, document.NewBlock("List", root, document.NewMeta("", "")))
		}
		return plugin.Result{Blocks: out}, nil
	}
	e := newEngine(t, []plugin.Descriptor{list, blockPlugin("Paragraph", "paragraph", document.NodeTypeBlock, "P")})

	blocks := importHTML(t, e, `<p>before</p><ul><li>one</li><li>two</li></ul><p>after</p>`)
	require.Len(t, blocks, 4)
	assert.Equal(t, []string{"before", "one", "two", "after"}, []string{
		blocks[0].PlainText(), blocks[1].PlainText(), blocks[2].PlainText(), blocks[3].PlainText(),
	})
}

func TestDeserialize_ParserElementReplacesRoot(t *testing.T) {
	code := blockPlugin("Code", "code", document.NodeTypeBlock, "PRE")
	code.Deserialize.Parse = func(el *html.Node) (plugin.Result, error) {
		return plugin.Result{Element: document.NewElement("code",
			map[string]any{document.PropNodeType: "block", "language": dom.Attr(el, "data-language")},
		)}, nil
	}
	blocks := importHTML(t, newEngine(t, []plugin.Descriptor{code}), `<pre data-language="go">x := 1</pre>`)

	require.Len(t, blocks, 1)
	root := blocks[0].Root()
	assert.Equal(t, "go", root.Props["language"])
	assert.Equal(t, []document.Node{document.Text{}}, root.Children, "empty custom root gets one empty text")
}

func TestDeserialize_AmbiguousWithBlockListConcatenates(t *testing.T) {
	lister := blockPlugin("Lister", "lister", document.NodeTypeBlock, "UL")
	lister.Deserialize.Parse = func(*html.Node) (plugin.Result, error) {
		var blocks []*document.Block
		for _, text := range []string{"a", "b"} {
			root := document.NewElement("lister", nil, document.Text{Text: text})
			blocks = append(blocks, document.NewBlock("Lister", root, document.Meta{}))
		}
		return plugin.Result{Blocks: blocks}, nil
	}
	plain := blockPlugin("Plain", "plain", document.NodeTypeBlock, "UL")

	blocks := importHTML(t, newEngine(t, []plugin.Descriptor{lister, plain}), `<ul><li>x</li></ul>`)
	require.Len(t, blocks, 3)
	got := make([]string, len(blocks))
	for i, b := range blocks {
		got[i] = b.Type + ":" + b.PlainText()
	}
	assert.Equal(t, []string{"Lister:a", "Lister:b", "Plain:x"}, got)
}

func TestDeserialize_BlockInsideBlockFlattensToText(t *testing.T) {
	blocks := importHTML(t, defaultEngine(t), `<blockquote><p>inner <b>bold</b></p></blockquote>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Blockquote", blocks[0].Type)
	assert.Equal(t, []document.Node{document.Text{Text: "inner bold"}}, blocks[0].Root().Children)
}

var errBoom = errors.New("boom")

func TestDeserialize_ParserErrorPropagates(t *testing.T) {
	broken := blockPlugin("Broken", "broken", document.NodeTypeBlock, "TABLE")
	broken.Deserialize.Parse = func(*html.Node) (plugin.Result, error) { return plugin.Result{}, errBoom }

	ctx, _ := testutil.NewContext(t)
	_, err := newEngine(t, []plugin.Descriptor{broken}).DeserializeHTML(ctx, strings.NewReader(`<div><table></table></div>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))
	assert.Contains(t, err.Error(), "plugin 'Broken' failed to parse <table>")
}

func TestDeserialize_MaxDepth(t *testing.T) {
	src := `<div><div><div><p>deep</p></div></div></div>`
	descs := []plugin.Descriptor{blockPlugin("Paragraph", "paragraph", document.NodeTypeBlock, "P")}

	ctx, logs := testutil.NewContext(t)
	blocks, err := newEngine(t, descs, WithMaxDepth(3)).DeserializeHTML(ctx, strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, blocks)
	testutil.AssertLogContains(t, logs, "maximum depth", "max_depth=3")

	blocks = importHTML(t, newEngine(t, descs, WithMaxDepth(5)), src)
	assert.Len(t, blocks, 1)
}

func TestDeserialize_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := defaultEngine(t).DeserializeHTML(ctx, strings.NewReader(`<p>x</p>`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeserialize_NilRoot(t *testing.T) {
	blocks, err := defaultEngine(t).Deserialize(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, blocks)
}

func TestDeserialize_FreshIdentitiesPerCall(t *testing.T) {
	e := defaultEngine(t)
	first := importHTML(t, e, `<p>x</p>`)
	second := importHTML(t, e, `<p>x</p>`)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, first[0].Root().ID, second[0].Root().ID)
}

func TestDeserialize_PluginWithoutRootFails(t *testing.T) {
	ghost := plugin.Descriptor{Type: "Ghost", Deserialize: &plugin.Deserialize{NodeNames: []string{"P"}}}

	ctx, _ := testutil.NewContext(t)
	_, err := newEngine(t, []plugin.Descriptor{ghost}).DeserializeHTML(ctx, strings.NewReader(`<p>x</p>`))
	assert.ErrorIs(t, err, plugin.ErrNoRootElement)
}

func TestDefaultMaxDepthOption(t *testing.T) {
	assert.Equal(t, DefaultMaxDepth, newEngine(t, nil, WithMaxDepth(0)).maxDepth)
	assert.Equal(t, 10, newEngine(t, nil, WithMaxDepth(10)).maxDepth)
}
