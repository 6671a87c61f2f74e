package deserialize

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/marks"
	"github.com/specialistvlad/blockpaste/internal/registry"
	"golang.org/x/net/html"
)

// DefaultMaxDepth bounds how deep the walker descends into nested markup.
const DefaultMaxDepth = 512

// Engine deserializes HTML into blocks using a fixed set of registry tables.
type Engine struct {
	tables   *registry.Tables
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the nesting depth past which subtrees are dropped. Values
// below one keep the default.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New creates an Engine over tables.
func New(tables *registry.Tables, opts ...Option) *Engine {
	e := &Engine{tables: tables, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tables returns the tables the engine was built with.
func (e *Engine) Tables() *registry.Tables {
	return e.tables
}

// DeserializeHTML parses an HTML document or fragment and deserializes its
// body.
func (e *Engine) DeserializeHTML(ctx context.Context, r io.Reader) ([]*document.Block, error) {
	body, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return e.Deserialize(ctx, body)
}

// Deserialize walks root and returns the top-level blocks it produced, in
// document order. Stray text, marks, inline elements and nested groups at the
// top level are dropped. Meta.Order is left at zero for the caller to assign.
func (e *Engine) Deserialize(ctx context.Context, root *html.Node) ([]*document.Block, error) {
	if root == nil {
		return nil, nil
	}

	w := &walker{
		ctx:    ctx,
		logger: ctxlog.FromContext(ctx),
		engine: e,
	}
	frags, err := w.walk(root, 0)
	if err != nil {
		return nil, err
	}

	var blocks []*document.Block
	dropped := 0
	for _, f := range frags {
		if f.Kind == KindBlock {
			blocks = append(blocks, f.Block)
			continue
		}
		dropped++
	}
	w.logger.Debug("Deserialized HTML.", "blocks", len(blocks), "dropped_top_level", dropped)
	return blocks, nil
}

// walker carries the per-call state of one Deserialize.
type walker struct {
	ctx       context.Context
	logger    *slog.Logger
	engine    *Engine
	truncated bool
}

// walk deserializes n and returns the fragments it contributes to its
// parent's child list. Lists returned here are spliced into the parent.
func (w *walker) walk(n *html.Node, depth int) ([]Fragment, error) {
	switch n.Type {
	case html.TextNode:
		return []Fragment{TextFragment(dom.CollapseWhitespace(n.Data))}, nil
	case html.ElementNode:
	case html.DocumentNode:
		// A whole document is walked like a transparent container.
		return w.walkChildren(n, depth)
	default:
		return nil, nil
	}

	tag := dom.TagName(n)
	if tag == "BR" {
		return []Fragment{TextFragment("\n")}, nil
	}

	if depth >= w.engine.maxDepth {
		if !w.truncated {
			w.truncated = true
			w.logger.Warn("Markup nesting exceeds the maximum depth; dropping deeper content.", "max_depth", w.engine.maxDepth, "tag", tag)
		}
		return nil, nil
	}
	if err := w.ctx.Err(); err != nil {
		return nil, err
	}

	children, err := w.walkChildren(n, depth)
	if err != nil {
		return nil, err
	}

	if mark, ok := marks.Lookup(tag); ok {
		text := dom.CollapseWhitespace(dom.TextContent(n))
		return []Fragment{MarkFragment(document.Text{Text: text}.Marked(mark, true))}, nil
	}

	handles := w.engine.tables.Candidates(tag)
	if len(handles) == 0 {
		return children, nil
	}

	// Every candidate contributes in registration order; block lists are
	// spliced so a tag claimed by several plugins yields all their blocks.
	var out []Fragment
	produced := false
	for _, h := range handles {
		f, ok, err := w.engine.assemble(w.ctx, h, n, children)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		produced = true
		if f.Kind == KindGroup {
			out = append(out, f.Group...)
			continue
		}
		out = append(out, f)
	}
	if !produced {
		// Only inline plugins claimed the tag and all of them declined.
		return children, nil
	}
	return out, nil
}

func (w *walker) walkChildren(n *html.Node, depth int) ([]Fragment, error) {
	var children []Fragment
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		frags, err := w.walk(c, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, frags...)
	}
	return children, nil
}
