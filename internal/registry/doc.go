// Package registry provides the central "glue" for the plugin system.
//
// Core modules register their Go parse handlers and queue their embedded
// manifests; user manifests are loaded from disk. Validate then checks that
// the Go code and the manifests are in sync (every named handler exists,
// every block plugin has a root element, no plugin type is declared twice),
// and Build derives the read-only lookup tables the import engine runs on:
//
//   - the promoted plugin set, where every inline element schema is visible
//     to every plugin (BuildPlugins)
//   - block-type → BlockDescriptor (BuildBlocks)
//   - tag name → ordered candidate handles (BuildNodeNameIndex)
//   - mark-type → formatting API (marks.BuildFormats)
//   - shortcut → BlockDescriptor (BuildShortcuts)
//
// Registration order is part of the contract. When two plugins claim the
// same tag, the one registered first is the first candidate; when two
// plugins declare the same inline element type, the one registered last
// wins.
package registry
