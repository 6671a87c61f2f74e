package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/document"
)

// Import deserializes the HTML read from r into blocks ordered from zero.
func (a *App) Import(ctx context.Context, r io.Reader) ([]*document.Block, error) {
	start := time.Now()
	blocks, err := a.Engine().DeserializeHTML(ctx, r)
	a.metrics.RecordImport(blocks, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	document.Reorder(blocks, 0)
	ctxlog.FromContext(ctx).Debug("Import finished.", "blocks", len(blocks), "duration", time.Since(start))
	return blocks, nil
}

// ImportFile imports the HTML file at path, or standard input for StdinPath.
func (a *App) ImportFile(ctx context.Context, path string) ([]*document.Block, error) {
	if path == StdinPath {
		return a.Import(ctx, os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return a.Import(ctx, f)
}

// WriteBlocks writes blocks to w in the configured output format.
func (a *App) WriteBlocks(w io.Writer, blocks []*document.Block) error {
	switch a.config.Output {
	case "text":
		return writeOutline(w, blocks)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document.NewContent(blocks))
	}
}

// maxOutlineIndent caps the indentation level of an outline line. Depth comes
// straight from pasted markup and can be arbitrarily large.
const maxOutlineIndent = 16

// writeOutline writes one line per block: order, type and plain text,
// indented by depth.
func writeOutline(w io.Writer, blocks []*document.Block) error {
	for _, b := range blocks {
		indent := min(max(b.Meta.Depth, 0), maxOutlineIndent)
		line := fmt.Sprintf("%s%d %s", strings.Repeat("  ", indent), b.Meta.Order, b.Type)
		if text := b.PlainText(); text != "" {
			line += ": " + text
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
