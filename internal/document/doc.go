// Package document defines the block-based document model produced by an
// import: blocks, the element tree each block owns, and the marked text leaves
// at the bottom of that tree.
//
// # Shape
//
//   - Block: the top-level persisted unit. It wraps exactly one root Element
//     and carries Meta (order, depth, align).
//   - Element: a node in a block's content tree. It is either the block's root
//     or a nested/inline element such as a link.
//   - Text: a leaf of text with zero or more boolean marks (bold, italic, ...).
//     Marks are flags on the leaf, not a tree.
//
// Values are created fresh per import and handed to the caller; nothing in
// this package retains them.
package document
