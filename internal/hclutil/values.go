package hclutil

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ObjectToMap evaluates expr as a literal object or map and converts it into
// plain Go values: strings, float64 numbers, bools, []any and map[string]any.
// A null value yields a nil map.
func ObjectToMap(expr hcl.Expression) (map[string]any, hcl.Diagnostics) {
	// Literal values only; manifests have no variables.
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, diags
	}

	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid props value",
			Detail:   fmt.Sprintf("Expected an object like { key = value }, got %s.", ty.FriendlyName()),
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}

	out, err := ValueToGo(val)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported props value",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}
	m, _ := out.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	return m, diags
}

// ValueToGo converts a known cty value into plain Go values by way of its
// JSON form.
func ValueToGo(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return out, nil
}
