// Package table provides the table block. A pasted <table> becomes one
// block whose root holds table-row elements, each holding
// table-data-cell elements.
package table

import (
	_ "embed"

	"github.com/specialistvlad/blockpaste/internal/registry"
)

//go:embed manifest.hcl
var manifest []byte

// DefaultColumnWidth is used for columns without a width attribute.
const DefaultColumnWidth = 200

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the table parse handler and queues the manifest.
func (m *Module) Register(r *registry.Registry) {
	r.Handlers().RegisterHandler("ParseTable", ParseTable)
	r.RegisterManifest("modules/table/manifest.hcl", manifest)
}
