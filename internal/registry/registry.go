package registry

import (
	"log/slog"
	"strings"

	"github.com/specialistvlad/blockpaste/internal/handlers"
	"github.com/specialistvlad/blockpaste/internal/marks"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// queuedManifest is manifest source registered in memory, usually embedded
// by a core module.
type queuedManifest struct {
	name string
	src  []byte
}

// Registry holds the parse handlers, plugin descriptors and marks for a
// single application instance. It is not safe for concurrent use; build the
// Tables once and share those instead.
type Registry struct {
	handlers  *handlers.Handlers
	plugins   []plugin.Descriptor
	marks     []marks.Descriptor
	manifests []queuedManifest
}

// New creates and initializes a new Registry instance. A nil h starts with
// an empty handler set.
func New(h *handlers.Handlers) *Registry {
	if h == nil {
		h = handlers.New()
	}
	return &Registry{handlers: h}
}

// Handlers returns the Go parse handler set modules register into.
func (r *Registry) Handlers() *handlers.Handlers {
	return r.handlers
}

// RegisterPlugin appends a plugin descriptor. Registration order is kept.
// Node names are stored upper-case and trimmed, the form tag lookups use;
// blank names are dropped.
func (r *Registry) RegisterPlugin(desc plugin.Descriptor) {
	slog.Debug("Registering plugin.", "type", desc.Type, "source", desc.Source)
	desc = desc.Clone()
	if desc.Deserialize != nil {
		desc.Deserialize.NodeNames = normalizeNodeNames(desc.Deserialize.NodeNames)
	}
	r.plugins = append(r.plugins, desc)
}

func normalizeNodeNames(names []string) []string {
	out := names[:0]
	for _, name := range names {
		if name = strings.ToUpper(strings.TrimSpace(name)); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// RegisterMark appends a mark descriptor.
func (r *Registry) RegisterMark(desc marks.Descriptor) {
	slog.Debug("Registering mark.", "type", desc.Type, "hotkey", desc.Hotkey)
	r.marks = append(r.marks, desc)
}

// RegisterManifest queues HCL manifest source to be decoded by
// LoadManifests. name is used in diagnostics.
func (r *Registry) RegisterManifest(name string, src []byte) {
	slog.Debug("Queueing plugin manifest.", "name", name)
	r.manifests = append(r.manifests, queuedManifest{name: name, src: src})
}

// Plugins returns the registered descriptors in registration order.
func (r *Registry) Plugins() []plugin.Descriptor {
	out := make([]plugin.Descriptor, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Marks returns the registered mark descriptors in registration order.
func (r *Registry) Marks() []marks.Descriptor {
	out := make([]marks.Descriptor, len(r.marks))
	copy(out, r.marks)
	return out
}
