package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("a\t\tb\n\nc"))
	assert.Equal(t, "a b c", CollapseWhitespace(CollapseWhitespace("a\t\tb\n\nc")))
	assert.Equal(t, " x ", CollapseWhitespace("\r\n\f\vx\t"))
	assert.Equal(t, "two  spaces", CollapseWhitespace("two  spaces"))
	assert.Equal(t, "", CollapseWhitespace(""))
}

func TestParseAndHelpers(t *testing.T) {
	body, err := Parse(strings.NewReader(`<div data-meta-depth="2"><p>Hello <b>bold</b></p><ul><li>1</li><li>2</li></ul></div>`))
	require.NoError(t, err)
	assert.Equal(t, "BODY", TagName(body))

	div := FindElement(body, "DIV")
	require.NotNil(t, div)
	assert.Equal(t, "2", Attr(div, "data-meta-depth"))
	assert.True(t, HasAttr(div, "data-meta-depth"))
	assert.False(t, HasAttr(div, "data-meta-align"))
	assert.Equal(t, "", Attr(div, "data-meta-align"))

	assert.Equal(t, "Hello bold12", TextContent(div))

	ul := FindElement(body, "ul")
	require.NotNil(t, ul)
	assert.Len(t, ChildElements(ul, "LI"), 2)
	assert.Nil(t, FindElement(body, "table"))
	assert.Equal(t, "", TagName(nil))
}
