package app

import (
	"context"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/handlers"
	"github.com/specialistvlad/blockpaste/internal/registry"
)

// LoadPlugins builds a fresh registry: the modules register their parse
// handlers and embedded manifests, then user manifests under PluginsPath
// are loaded in lexical order, and the registry is validated and built.
func (a *App) LoadPlugins(ctx context.Context) (*registry.Tables, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading plugins...", "plugins_path", a.config.PluginsPath, "modules", len(a.modules))

	reg := registry.New(handlers.New())
	for _, mod := range a.modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(a.modules))

	if err := reg.LoadManifests(ctx); err != nil {
		return nil, err
	}
	if a.config.PluginsPath != "" {
		if err := reg.LoadManifestsRecursively(ctx, a.config.PluginsPath); err != nil {
			return nil, err
		}
	}

	return reg.Build(ctx)
}

// Reload rebuilds the plugin tables and swaps them in. On failure the
// previous tables stay in use.
func (a *App) Reload(ctx context.Context) error {
	tables, err := a.LoadPlugins(ctx)
	if err != nil {
		a.metrics.RecordReload(0, err)
		return err
	}
	a.setTables(tables)
	a.metrics.RecordReload(len(tables.Blocks), nil)
	ctxlog.FromContext(ctx).Info("Plugins reloaded.", "blocks", len(tables.Blocks))
	return nil
}
