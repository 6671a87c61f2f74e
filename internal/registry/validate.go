package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/plugin"
)

var (
	// ErrDuplicatePlugin is reported when two descriptors share a type.
	ErrDuplicatePlugin = errors.New("duplicate plugin type")
	// ErrUnknownHandler is reported when a manifest names a parse handler
	// that no module registered.
	ErrUnknownHandler = errors.New("unknown parse handler")
)

// ValidationError aggregates every problem found by Validate.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("registry validation failed:\n- %s", strings.Join(msgs, "\n- "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}

// Validate performs a strict parity check between the manifests and the Go
// handlers, and checks that every plugin can build its blocks.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []error
	logger := ctxlog.FromContext(ctx)

	sources := make(map[string]string, len(r.plugins))
	used := make(map[string]struct{})

	for _, p := range r.plugins {
		if p.Type == "" {
			errs = append(errs, fmt.Errorf("plugin declared in %s has an empty type", p.Source))
			continue
		}
		if prev, exists := sources[p.Type]; exists {
			errs = append(errs, fmt.Errorf("plugin '%s' declared in %s and %s: %w", p.Type, prev, p.Source, ErrDuplicatePlugin))
			continue
		}
		sources[p.Type] = p.Source

		roots := 0
		for _, e := range p.Elements {
			if e.AsRoot {
				roots++
			}
		}
		if roots > 1 {
			errs = append(errs, fmt.Errorf("plugin '%s': more than one element is marked as_root", p.Type))
		}

		claims := p.Deserialize != nil && len(p.Deserialize.NodeNames) > 0
		if len(p.Elements) == 0 {
			if claims {
				errs = append(errs, fmt.Errorf("plugin '%s': claims node names %v but declares no elements: %w", p.Type, p.Deserialize.NodeNames, plugin.ErrNoRootElement))
			} else {
				logger.Warn("Plugin declares no elements and claims no node names; it contributes nothing.", "plugin", p.Type)
			}
		}

		if p.Deserialize == nil {
			continue
		}
		if name := p.Deserialize.ParseHandler; name != "" {
			used[name] = struct{}{}
			if _, ok := r.handlers.Get(name); !ok {
				errs = append(errs, fmt.Errorf("plugin '%s': parse handler '%s' is not registered: %w", p.Type, name, ErrUnknownHandler))
			}
		}
		if claims && p.IsInline() && p.Deserialize.Parse == nil && p.Deserialize.ParseHandler == "" {
			logger.Warn("Inline plugin claims node names without a parse handler; matches will produce nothing.", "plugin", p.Type)
		}
	}

	for _, name := range r.handlers.Names() {
		if _, ok := used[name]; !ok {
			logger.Warn("Parse handler is registered but no manifest refers to it.", "handler", name)
		}
	}

	markSeen := make(map[string]struct{}, len(r.marks))
	for _, m := range r.marks {
		if _, dup := markSeen[m.Type]; dup {
			logger.Warn("Mark declared more than once; the last declaration wins.", "mark", m.Type, "source", m.Source)
		}
		markSeen[m.Type] = struct{}{}
	}

	if len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}

// Build validates the registry, resolves parse handler names and builds the
// lookup tables.
func (r *Registry) Build(ctx context.Context) (*Tables, error) {
	if err := r.Validate(ctx); err != nil {
		return nil, err
	}

	descs := make([]plugin.Descriptor, len(r.plugins))
	for i, p := range r.plugins {
		p = p.Clone()
		if p.Deserialize != nil && p.Deserialize.Parse == nil && p.Deserialize.ParseHandler != "" {
			fn, _ := r.handlers.Get(p.Deserialize.ParseHandler)
			p.Deserialize.Parse = fn
		}
		descs[i] = p
	}

	t := NewTables(descs, r.marks)
	ctxlog.FromContext(ctx).Info("Registry built.",
		"plugins", len(t.Plugins),
		"blocks", len(t.Blocks),
		"node_names", len(t.NodeNames),
		"marks", len(t.Formats),
	)
	return t, nil
}
