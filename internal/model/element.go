// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes 'element' blocks into element schemas.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/hclutil"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// elementBodySchema is the HCL schema for the body of an 'element' block.
var elementBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// node_type is required, but checked by hand for a better message.
		{Name: "node_type"},
		{Name: "as_root"},
		{Name: "props"},
	},
}

// parseElements decodes all 'element' blocks, keeping declaration order.
func parseElements(blocks hcl.Blocks) (plugin.Elements, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var elements plugin.Elements
	seen := make(map[string]struct{})

	for _, block := range blocks.OfType("element") {
		elementType := block.Labels[0]

		if _, exists := seen[elementType]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate element definition",
				Detail:   fmt.Sprintf("An element named '%s' has already been defined.", elementType),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[elementType] = struct{}{}

		content, contentDiags := block.Body.Content(elementBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		nodeTypeAttr, exists := content.Attributes["node_type"]
		if !exists {
			missing := block.Body.MissingItemRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'node_type' attribute",
				Detail:   "The 'node_type' attribute is required for all element blocks.",
				Subject:  &missing,
			})
			continue
		}

		var rawNodeType string
		typeDiags := gohcl.DecodeExpression(nodeTypeAttr.Expr, nil, &rawNodeType)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}
		nodeType := document.NodeType(rawNodeType)
		if !nodeType.Valid() {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported node type",
				Detail:   fmt.Sprintf("The node type '%s' is not valid. Supported types are: block, inline, inlineVoid, void.", rawNodeType),
				Subject:  nodeTypeAttr.Expr.Range().Ptr(),
			})
			continue
		}

		schema := plugin.ElementSchema{
			Type:     elementType,
			NodeType: nodeType,
		}

		if attr, exists := content.Attributes["as_root"]; exists {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &schema.AsRoot)...)
		}

		if attr, exists := content.Attributes["props"]; exists {
			props, propDiags := hclutil.ObjectToMap(attr.Expr)
			diags = append(diags, propDiags...)
			if propDiags.HasErrors() {
				continue
			}
			schema.Props = props
		}

		elements = append(elements, schema)
	}

	return elements, diags
}
