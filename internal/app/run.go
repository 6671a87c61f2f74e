package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/publish"
	"github.com/specialistvlad/blockpaste/internal/server"
	"github.com/specialistvlad/blockpaste/internal/watcher"
)

// Run executes the main application logic: a one-shot import when an input
// path is configured, otherwise the import server until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	a.logger.Info("Block types registered.", "count", len(a.Tables().Blocks), "types", a.Tables().BlockTypes())

	var err error
	if a.config.Serving() {
		err = a.serve(ctx)
	} else {
		err = a.importOnce(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

func (a *App) importOnce(ctx context.Context) error {
	ctx = ctxlog.With(ctx, "input", a.config.InputPath)
	blocks, err := a.ImportFile(ctx, a.config.InputPath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	a.logger.Info("🏁 Import finished.", "blocks", len(blocks))

	if err := a.WriteBlocks(a.outW, blocks); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if a.config.Publish.URL != "" {
		return a.Publish(ctx, blocks)
	}
	return nil
}

// Publish pushes blocks to the configured socket.io server.
func (a *App) Publish(ctx context.Context, blocks []*document.Block) error {
	pc := a.config.Publish
	pub, err := publish.New(publish.Config{
		URL:                pc.URL,
		Path:               pc.Path,
		Namespace:          pc.Namespace,
		Event:              pc.Event,
		AckEvent:           pc.AckEvent,
		Timeout:            pc.Timeout,
		InsecureSkipVerify: pc.Insecure,
	})
	if err != nil {
		return fmt.Errorf("invalid publish configuration: %w", err)
	}

	ack, err := pub.Publish(ctx, document.NewContent(blocks))
	a.metrics.RecordPublish(err)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	a.logger.Info("📤 Blocks published.", "url", pc.URL, "ack", ack)
	return nil
}

func (a *App) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchErr := make(chan error, 1)
	if a.config.Serve.Watch {
		w, err := watcher.New(watcher.Config{Path: a.config.PluginsPath})
		if err != nil {
			return fmt.Errorf("failed to start manifest watcher: %w", err)
		}
		go func() { watchErr <- w.Watch(ctx, a.Reload) }()
	}

	srv := server.New(ctx, server.Config{
		Address:      a.config.Serve.Address,
		ReadTimeout:  a.config.Serve.ReadTimeout,
		WriteTimeout: a.config.Serve.WriteTimeout,
		MaxBodyBytes: a.config.Serve.MaxBodyBytes,
	}, a, a.metrics.Handler())

	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Run(ctx) }()

	select {
	case err := <-srvErr:
		return err
	case err := <-watchErr:
		if err != nil {
			cancel()
			<-srvErr
			return fmt.Errorf("manifest watcher failed: %w", err)
		}
		return <-srvErr
	}
}
