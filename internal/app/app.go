package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/deserialize"
	"github.com/specialistvlad/blockpaste/internal/metrics"
	"github.com/specialistvlad/blockpaste/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	modules []registry.Module
	metrics *metrics.Collector

	// engine is swapped atomically on manifest reloads; imports in flight
	// keep the engine they started with.
	engine atomic.Pointer[deserialize.Engine]
}

// NewApp is the constructor for the main application. Imported documents are
// written to outW and logs to logW. It loads every plugin manifest and
// builds the lookup tables; a broken manifest is returned as an error. With
// no modules given, the core modules are used.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		modules: modules,
		metrics: metrics.NewCollector(nil),
	}

	tables, err := a.LoadPlugins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load plugins: %w", err)
	}
	a.setTables(tables)
	a.metrics.SetRegisteredBlocks(len(tables.Blocks))

	return a, nil
}

// Engine returns the importer currently in use.
func (a *App) Engine() *deserialize.Engine {
	return a.engine.Load()
}

// Tables returns the lookup tables currently in use.
func (a *App) Tables() *registry.Tables {
	return a.Engine().Tables()
}

// Metrics returns the application's metrics collector.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) setTables(tables *registry.Tables) {
	a.engine.Store(deserialize.New(tables, deserialize.WithMaxDepth(a.config.MaxDepth)))
}
