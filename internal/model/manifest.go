// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Manifest, the decoded form of one plugin manifest
// file, and the entry points that parse it.
package model

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/marks"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// Manifest is everything declared in one manifest file, in declaration order.
type Manifest struct {
	Source  string
	Plugins []plugin.Descriptor
	Marks   []marks.Descriptor
}

// manifestRootSchema defines the top-level structure of a manifest file.
type manifestRootSchema struct {
	Plugins []*hclPlugin `hcl:"plugin,block"`
	Marks   []*hclMark   `hcl:"mark,block"`
}

// hclPlugin represents a single 'plugin' block for decoding purposes.
type hclPlugin struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`
}

// hclMark represents a single 'mark' block.
type hclMark struct {
	Type   string `hcl:"type,label"`
	Hotkey string `hcl:"hotkey,optional"`
}

// ParseManifest parses manifest source held in memory. filename is used for
// diagnostics and as the Source of every descriptor.
func ParseManifest(ctx context.Context, src []byte, filename string) (*Manifest, hcl.Diagnostics) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return ParseManifestFile(ctx, hclFile, filename)
}

// ParseManifestFile decodes an HCL file that contains 'plugin' and 'mark'
// blocks.
func ParseManifestFile(ctx context.Context, hclFile *hcl.File, filePath string) (*Manifest, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing plugin manifest", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	root := &manifestRootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, root)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	manifest := &Manifest{
		Source:  filePath,
		Plugins: make([]plugin.Descriptor, 0, len(root.Plugins)),
	}

	for _, p := range root.Plugins {
		desc, pluginDiags := parsePlugin(p, filePath)
		allDiags = append(allDiags, pluginDiags...)
		if pluginDiags.HasErrors() {
			continue // Skip this plugin but keep collecting diagnostics.
		}
		manifest.Plugins = append(manifest.Plugins, desc)
	}

	for _, m := range root.Marks {
		mark, markDiags := parseMark(m, filePath)
		allDiags = append(allDiags, markDiags...)
		if markDiags.HasErrors() {
			continue
		}
		manifest.Marks = append(manifest.Marks, mark)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Parsed plugin manifest", "file_path", filePath, "plugins", len(manifest.Plugins), "marks", len(manifest.Marks))
	return manifest, allDiags
}
