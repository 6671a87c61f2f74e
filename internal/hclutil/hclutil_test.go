package hclutil

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func TestObjectToMap(t *testing.T) {
	expr := parseExpr(t, `{ theme = "info", level = 2, wide = true, sizes = { width = 650 }, tags = ["a", "b"] }`)

	m, diags := ObjectToMap(expr)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Equal(t, map[string]any{
		"theme": "info",
		"level": float64(2),
		"wide":  true,
		"sizes": map[string]any{"width": float64(650)},
		"tags":  []any{"a", "b"},
	}, m)
}

func TestObjectToMap_Empty(t *testing.T) {
	m, diags := ObjectToMap(parseExpr(t, `{}`))
	require.False(t, diags.HasErrors())
	assert.Equal(t, map[string]any{}, m)
}

func TestObjectToMap_Null(t *testing.T) {
	m, diags := ObjectToMap(parseExpr(t, `null`))
	require.False(t, diags.HasErrors())
	assert.Nil(t, m)
}

func TestObjectToMap_RejectsScalar(t *testing.T) {
	_, diags := ObjectToMap(parseExpr(t, `"nope"`))
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Error(), "Invalid props value")
}

func TestValueToGo(t *testing.T) {
	out, err := ValueToGo(cty.StringVal("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", out)

	out, err = ValueToGo(cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = ValueToGo(cty.UnknownVal(cty.String))
	assert.Error(t, err)
}

func TestFindUniqueBlock(t *testing.T) {
	blocks := hcl.Blocks{
		{Type: "options"},
		{Type: "element"},
		{Type: "options"},
	}
	found, diags := FindUniqueBlock(blocks, "options")
	require.NotNil(t, found)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Error(), `Duplicate "options" block`)

	found, diags = FindUniqueBlock(blocks, "deserialize")
	assert.Nil(t, found)
	assert.False(t, diags.HasErrors())
}
