// Package handlers stores the Go parse functions that plugin manifests refer
// to by name (`parse = "ParseTable"`).
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/blockpaste/internal/plugin"
)

// Handlers holds all the registered parse handlers.
type Handlers struct {
	all map[string]plugin.ParseFunc
}

// New creates and initializes a new Handlers instance.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]plugin.ParseFunc),
	}
}

// RegisterHandler registers a parse function under name. Registering the same
// name twice is a programming error and panics.
func (h *Handlers) RegisterHandler(name string, fn plugin.ParseFunc) {
	if fn == nil {
		panic(fmt.Sprintf("parse handler '%s' is nil", name))
	}
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("parse handler with name '%s' already registered", name))
	}
	slog.Debug("Registering parse handler.", "name", name)
	h.all[name] = fn
}

// Get returns the handler registered under name.
func (h *Handlers) Get(name string) (plugin.ParseFunc, bool) {
	fn, ok := h.all[name]
	return fn, ok
}

// Names returns the registered handler names in sorted order.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
