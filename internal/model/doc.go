// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model decodes plugin manifests written in HCL into plugin and mark
// descriptors.
//
// # Manifest format
//
//	plugin "Paragraph" {
//	  custom_editor = false
//
//	  options {
//	    display_title = "Text"
//	    placeholder   = "Type text"
//	    shortcuts     = ["p", "text"]
//	  }
//
//	  element "paragraph" {
//	    node_type = "block"
//	    as_root   = true
//	    props     = {}
//	  }
//
//	  deserialize {
//	    node_names = ["P"]
//	    parse      = "ParseParagraph" # optional, a registered Go handler
//	  }
//	}
//
//	mark "bold" {
//	  hotkey = "mod+b"
//	}
//
// Plugins and elements keep their declaration order. Registration order
// decides which plugin comes first when several claim the same tag, so the
// order inside a file matters.
//
// The package only decodes. Handler names are resolved, and cross-plugin
// checks run, in the registry.
package model
