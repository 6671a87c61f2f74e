// Package text provides the plain text blocks (paragraph, headings,
// blockquote, callout) and declares the text marks.
package text

import (
	_ "embed"

	"github.com/specialistvlad/blockpaste/internal/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register queues the text manifest. Text blocks need no Go parse handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterManifest("modules/text/manifest.hcl", manifest)
}
