// Package media provides the void media blocks: image, embed and divider.
package media

import (
	_ "embed"

	"github.com/specialistvlad/blockpaste/internal/registry"
)

//go:embed manifest.hcl
var manifest []byte

// Default media sizes, used when the source element carries none.
const (
	DefaultWidth       = 650
	DefaultImageHeight = 500
	DefaultEmbedHeight = 400
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the media parse handlers and queues the manifest.
func (m *Module) Register(r *registry.Registry) {
	r.Handlers().RegisterHandler("ParseImage", ParseImage)
	r.Handlers().RegisterHandler("ParseEmbed", ParseEmbed)
	r.RegisterManifest("modules/media/manifest.hcl", manifest)
}
