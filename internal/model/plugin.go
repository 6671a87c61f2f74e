// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes a 'plugin' block into a plugin.Descriptor.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/hclutil"
	"github.com/specialistvlad/blockpaste/internal/marks"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// pluginBodySchema is the HCL schema for the body of a 'plugin' block.
var pluginBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "custom_editor"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "options"},
		{Type: "element", LabelNames: []string{"type"}},
		{Type: "deserialize"},
	},
}

// hclOptions is the body of an 'options' block.
type hclOptions struct {
	DisplayTitle       string   `hcl:"display_title,optional"`
	DisplayDescription string   `hcl:"display_description,optional"`
	Placeholder        string   `hcl:"placeholder,optional"`
	Align              string   `hcl:"align,optional"`
	Shortcuts          []string `hcl:"shortcuts,optional"`
	MaxWidth           int      `hcl:"max_width,optional"`
	MaxHeight          int      `hcl:"max_height,optional"`
}

func parsePlugin(p *hclPlugin, filePath string) (plugin.Descriptor, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	desc := plugin.Descriptor{
		Type:   p.Type,
		Source: filePath,
	}

	if p.Type == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty plugin type",
			Detail:   "A plugin block needs a non-empty type label, e.g. plugin \"Paragraph\" {}.",
		})
		return desc, diags
	}

	content, contentDiags := p.Body.Content(pluginBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return desc, diags
	}

	if attr, exists := content.Attributes["custom_editor"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &desc.CustomEditor)...)
	}

	optionsBlock, blockDiags := hclutil.FindUniqueBlock(content.Blocks, "options")
	diags = append(diags, blockDiags...)
	if optionsBlock != nil {
		var opts hclOptions
		optDiags := gohcl.DecodeBody(optionsBlock.Body, nil, &opts)
		diags = append(diags, optDiags...)
		if !optDiags.HasErrors() {
			desc.Options = toOptions(opts)
		}
	}

	var elemDiags hcl.Diagnostics
	desc.Elements, elemDiags = parseElements(content.Blocks)
	diags = append(diags, elemDiags...)

	var desDiags hcl.Diagnostics
	desc.Deserialize, desDiags = parseDeserialize(content.Blocks)
	diags = append(diags, desDiags...)

	return desc, diags
}

func toOptions(o hclOptions) plugin.Options {
	opts := plugin.Options{
		Display: plugin.Display{
			Title:       o.DisplayTitle,
			Description: o.DisplayDescription,
		},
		Placeholder: o.Placeholder,
		Shortcuts:   o.Shortcuts,
	}
	if o.Align != "" {
		opts.Align = document.ParseAlign(o.Align)
	}
	if o.MaxWidth > 0 || o.MaxHeight > 0 {
		opts.MaxSizes = &plugin.MaxSizes{MaxWidth: o.MaxWidth, MaxHeight: o.MaxHeight}
	}
	return opts
}

// parseMark validates a decoded 'mark' block.
func parseMark(m *hclMark, filePath string) (marks.Descriptor, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if !document.KnownMark(m.Type) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown mark type",
			Detail:   fmt.Sprintf("Mark '%s' is not supported. Supported marks are: bold, italic, underline, strike, code.", m.Type),
		})
	}
	return marks.Descriptor{Type: m.Type, Hotkey: m.Hotkey, Source: filePath}, diags
}
