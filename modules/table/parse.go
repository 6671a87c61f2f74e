package table

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/dom"
	"github.com/specialistvlad/blockpaste/internal/marks"
	"github.com/specialistvlad/blockpaste/internal/plugin"
	"golang.org/x/net/html"
)

// ParseTable builds a complete table block from a <table>. A table without
// rows is declined.
func ParseTable(el *html.Node) (plugin.Result, error) {
	rows, inHead := tableRows(el)
	if len(rows) == 0 {
		return plugin.Result{}, nil
	}

	headerRow := inHead[0] || allHeaderCells(rows[0])
	headerColumn := true
	columns := 0

	rowElements := make([]document.Node, 0, len(rows))
	for i, tr := range rows {
		cells := rowCells(tr)
		columns = max(columns, len(cells))
		if i > 0 || !headerRow {
			if len(cells) == 0 || dom.TagName(cells[0]) != "TH" {
				headerColumn = false
			}
		}

		cellElements := make([]document.Node, 0, len(cells))
		for _, td := range cells {
			cellElements = append(cellElements, document.NewElement("table-data-cell", map[string]any{
				document.PropNodeType: string(document.NodeTypeBlock),
				"asHeader":            dom.TagName(td) == "TH" || inHead[i],
				"width":               cellWidth(td),
			}, cellChildren(td)...))
		}
		if len(cellElements) == 0 {
			cellElements = append(cellElements, document.EmptyText())
		}
		rowElements = append(rowElements, document.NewElement("table-row", map[string]any{
			document.PropNodeType: string(document.NodeTypeBlock),
		}, cellElements...))
	}
	if len(rows) == 1 && headerRow {
		headerColumn = false
	}

	root := document.NewElement("table", map[string]any{
		document.PropNodeType: string(document.NodeTypeBlock),
		"headerRow":           headerRow,
		"headerColumn":        headerColumn,
		"columnWidths":        columnWidths(rows[0], columns),
	}, rowElements...)

	meta := document.NewMeta(dom.Attr(el, "data-meta-align"), dom.Attr(el, "data-meta-depth"))
	return plugin.Result{Blocks: []*document.Block{document.NewBlock("Table", root, meta)}}, nil
}

// tableRows returns the table's own rows in document order, and for each
// whether it sits in <thead>. Rows of nested tables are not included.
func tableRows(table *html.Node) ([]*html.Node, []bool) {
	var rows []*html.Node
	var inHead []bool
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch dom.TagName(c) {
		case "TR":
			rows = append(rows, c)
			inHead = append(inHead, false)
		case "THEAD", "TBODY", "TFOOT":
			for _, tr := range dom.ChildElements(c, "tr") {
				rows = append(rows, tr)
				inHead = append(inHead, dom.TagName(c) == "THEAD")
			}
		}
	}
	return rows, inHead
}

func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if tag := dom.TagName(c); tag == "TD" || tag == "TH" {
			cells = append(cells, c)
		}
	}
	return cells
}

func allHeaderCells(tr *html.Node) bool {
	cells := rowCells(tr)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if dom.TagName(c) != "TH" {
			return false
		}
	}
	return true
}

func columnWidths(first *html.Node, columns int) []any {
	widths := make([]any, columns)
	cells := rowCells(first)
	for i := range widths {
		widths[i] = DefaultColumnWidth
		if i < len(cells) {
			widths[i] = cellWidth(cells[i])
		}
	}
	return widths
}

func cellWidth(cell *html.Node) int {
	raw := strings.TrimSuffix(strings.TrimSpace(dom.Attr(cell, "width")), "px")
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return n
	}
	return DefaultColumnWidth
}

// cellChildren flattens a cell's content into text leaves. A mark tag sets
// its mark on every leaf beneath it, so nested mark tags combine; every
// other element contributes its leaves unmarked.
func cellChildren(cell *html.Node) []document.Node {
	var walk func(n *html.Node) []document.Node
	walk = func(n *html.Node) []document.Node {
		var leaves []document.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if text := dom.CollapseWhitespace(c.Data); strings.TrimSpace(text) != "" {
					leaves = append(leaves, document.Text{Text: text})
				}
			case html.ElementNode:
				tag := dom.TagName(c)
				if tag == "BR" {
					leaves = append(leaves, document.Text{Text: "\n"})
					continue
				}
				inner := walk(c)
				if mark, ok := marks.Lookup(tag); ok {
					marks.Format{Type: mark}.Apply(inner)
				}
				leaves = append(leaves, inner...)
			}
		}
		return leaves
	}
	out := walk(cell)

	if len(out) == 0 {
		out = append(out, document.EmptyText())
	}
	return out
}
