// Package deserialize turns an HTML subtree into document blocks.
//
// The Engine walks the tree depth-first. Every node reduces to a Fragment:
// plain text, a marked text leaf, an inline element, a block, or a group of
// fragments. Tags claimed by a plugin are handed to the block assembler,
// known mark tags become marked leaves, and every other element is
// transparent, so its children take its place. At the top level only blocks
// are kept.
//
// Mark tags read the raw text content of their subtree, so markup nested in
// a mark (bold inside italic) is flattened to text with the outer mark only.
//
// An Engine holds only read-only tables and is safe for concurrent use.
package deserialize
