package link

import (
	"strings"
	"testing"

	"github.com/specialistvlad/blockpaste/internal/deserialize"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/registry"
	"github.com/specialistvlad/blockpaste/internal/testutil"
	"github.com/specialistvlad/blockpaste/modules/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func anchor(t *testing.T, src string) *html.Node {
	t.Helper()
	body, err := dom.Parse(strings.NewReader(src))
	require.NoError(t, err)
	a := dom.FindElement(body, "a")
	require.NotNil(t, a)
	return a
}

func TestParseLink(t *testing.T) {
	res, err := ParseLink(anchor(t, `<a href=" https://example.com " rel="nofollow" title="Example">the
	site</a>`))
	require.NoError(t, err)
	require.NotNil(t, res.Element)

	el := res.Element
	assert.Equal(t, "link", el.Type)
	assert.True(t, el.IsInline())
	assert.Equal(t, "https://example.com", el.Props["url"])
	assert.Equal(t, "_self", el.Props["target"])
	assert.Equal(t, "nofollow", el.Props["rel"])
	assert.Equal(t, "Example", el.Props["title"])
	assert.Equal(t, []document.Node{document.Text{Text: "the site"}}, el.Children)
}

func TestParseLink_Declines(t *testing.T) {
	for _, src := range []string{
		`<a name="top">anchor</a>`,
		`<a href="/u/1" data-mention-id="1">@ann</a>`,
	} {
		res, err := ParseLink(anchor(t, src))
		require.NoError(t, err)
		assert.True(t, res.IsZero(), src)
	}
}

func TestParseMention(t *testing.T) {
	res, err := ParseMention(anchor(t, `<a href="/u/1" data-mention-id="1">@ann</a>`))
	require.NoError(t, err)
	require.NotNil(t, res.Element)
	assert.Equal(t, "mention", res.Element.Type)
	assert.Equal(t, "1", res.Element.Props["id"])
	assert.Equal(t, "ann", res.Element.Props["name"])
	assert.Equal(t, "/u/1", res.Element.Props["url"])

	res, err = ParseMention(anchor(t, `<a href="/x">x</a>`))
	require.NoError(t, err)
	assert.True(t, res.IsZero())
}

func TestModule_InParagraph(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	r := registry.New(nil)
	(&text.Module{}).Register(r)
	(&Module{}).Register(r)
	require.NoError(t, r.LoadManifests(ctx))
	tables, err := r.Build(ctx)
	require.NoError(t, err)

	// Inline plugins never form blocks but are promoted into every block.
	assert.NotContains(t, tables.Blocks, "Link")
	_, ok := tables.Blocks["Paragraph"].Elements.Get("mention")
	assert.True(t, ok)
	assert.Len(t, tables.Candidates("A"), 2)

	src := `<p>Hi <a href="/u/1" data-mention-id="1">@ann</a>, see <a href="https://example.com">docs</a><a>!</a></p>`
	blocks, err := deserialize.New(tables).DeserializeHTML(ctx, strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	children := blocks[0].Root().Children
	require.Len(t, children, 5)
	assert.Equal(t, document.Text{Text: "Hi "}, children[0])
	assert.Equal(t, "mention", children[1].(*document.Element).Type)
	assert.Equal(t, document.Text{Text: ", see "}, children[2])
	assert.Equal(t, "link", children[3].(*document.Element).Type)
	// Both parsers decline a bare anchor, so its text stays.
	assert.Equal(t, document.Text{Text: "!"}, children[4])
}
