package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/fsutil"
	"github.com/specialistvlad/blockpaste/internal/model"
)

// LoadManifests decodes every queued in-memory manifest, in the order they
// were queued, and registers their plugins and marks.
func (reg *Registry) LoadManifests(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, q := range reg.manifests {
		m, diags := model.ParseManifest(ctx, q.src, q.name)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse manifest %s: %w", q.name, diags)
		}
		reg.apply(m)
	}

	logger.Debug("Loaded queued manifests.", "count", len(reg.manifests))
	reg.manifests = nil
	return nil
}

// LoadManifestsRecursively loads every .hcl file under pluginsPath in
// lexical path order.
func (reg *Registry) LoadManifestsRecursively(ctx context.Context, pluginsPath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading manifests from plugins path...", "path", pluginsPath)

	filePaths, err := fsutil.FindFilesByExtension(pluginsPath, ".hcl")
	if err != nil {
		logger.Error("Failed to walk plugins directory", "path", pluginsPath, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", pluginsPath)
		return nil
	}

	logger.Debug("Found HCL files to load", "files", filePaths)

	parser := hclparse.NewParser()
	plugins := 0

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		m, diags := model.ParseManifestFile(ctx, hclFile, filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to process plugin manifest in %s: %w", filePath, diags)
		}
		reg.apply(m)
		plugins += len(m.Plugins)
		logger.Debug("Successfully loaded definitions from HCL file", "file", filePath)
	}

	logger.Info("Plugin manifests loaded.", "files", len(filePaths), "plugins", plugins)
	return nil
}

func (reg *Registry) apply(m *model.Manifest) {
	for _, p := range m.Plugins {
		reg.RegisterPlugin(p)
	}
	for _, mk := range m.Marks {
		reg.RegisterMark(mk)
	}
}
