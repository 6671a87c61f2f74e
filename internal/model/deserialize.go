// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes the 'deserialize' block, which binds HTML tag names to a
// plugin and optionally names the Go handler that parses them.
package model

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/blockpaste/internal/hclutil"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// hclDeserialize is the body of a 'deserialize' block.
type hclDeserialize struct {
	NodeNames []string `hcl:"node_names"`
	Parse     string   `hcl:"parse,optional"`
}

// parseDeserialize finds and decodes the unique 'deserialize' block. A plugin
// without one simply claims no tags.
func parseDeserialize(blocks hcl.Blocks) (*plugin.Deserialize, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	block, blockDiags := hclutil.FindUniqueBlock(blocks, "deserialize")
	diags = append(diags, blockDiags...)
	if diags.HasErrors() || block == nil {
		return nil, diags
	}

	var raw hclDeserialize
	decodeDiags := gohcl.DecodeBody(block.Body, nil, &raw)
	diags = append(diags, decodeDiags...)
	if decodeDiags.HasErrors() {
		return nil, diags
	}

	names := make([]string, 0, len(raw.NodeNames))
	for _, name := range raw.NodeNames {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Empty node name",
				Detail:   "Entries in 'node_names' must be non-empty tag names such as \"P\".",
				Subject:  &block.DefRange,
			})
			continue
		}
		names = append(names, name)
	}

	return &plugin.Deserialize{
		NodeNames:    names,
		ParseHandler: raw.Parse,
	}, diags
}
