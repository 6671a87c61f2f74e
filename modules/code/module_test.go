package code

import (
	"strings"
	"testing"

	"github.com/specialistvlad/blockpaste/internal/deserialize"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/registry"
	"github.com/specialistvlad/blockpaste/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguage(t *testing.T) {
	cases := map[string]string{
		`<pre data-language="Go">x</pre>`:                        "go",
		`<pre><code class="hljs language-python">x</code></pre>`: "python",
		`<pre class="lang-rust">x</pre>`:                         "rust",
		`<pre><code data-language="sql">x</code></pre>`:          "sql",
		`<pre>x</pre>`: DefaultLanguage,
	}
	for src, want := range cases {
		body, err := dom.Parse(strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, want, Language(dom.FindElement(body, "pre")), src)
	}
}

func TestModule(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	r := registry.New(nil)
	(&Module{}).Register(r)
	require.NoError(t, r.LoadManifests(ctx))
	tables, err := r.Build(ctx)
	require.NoError(t, err)

	src := "<pre data-theme=\"github\"><code class=\"language-go\">func main() {\n\tfmt.Println(\"&lt;b&gt;\")\n}\n</code></pre>"
	blocks, err := deserialize.New(tables).DeserializeHTML(ctx, strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	root := blocks[0].Root()
	assert.Equal(t, "Code", blocks[0].Type)
	assert.Equal(t, "code", root.Type)
	assert.Equal(t, "go", root.Props["language"])
	assert.Equal(t, "github", root.Props["theme"])
	assert.Equal(t, []document.Node{
		document.Text{Text: "func main() {\n\tfmt.Println(\"<b>\")\n}"},
	}, root.Children)
}
