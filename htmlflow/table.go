package htmlflow

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/tsawler/typeset/flow"
	"github.com/tsawler/typeset/track"
)

// table converts an HTML table into a table block. Rows come from
// thead, tbody, tfoot, and direct tr children, in document order within
// each section. The table, each row, and each cell become tree
// elements, and each cell wraps one paragraph element around its text.
func (w *walker) table(n *html.Node) {
	var rows []flow.TableRow
	var rowNodes []*track.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead":
			rs, ns := w.tableRows(c, true)
			rows = append(rows, rs...)
			rowNodes = append(rowNodes, ns...)
		case "tbody", "tfoot":
			rs, ns := w.tableRows(c, false)
			rows = append(rows, rs...)
			rowNodes = append(rowNodes, ns...)
		case "tr":
			if row, node, ok := w.tableRow(c, false); ok {
				rows = append(rows, row)
				rowNodes = append(rowNodes, node)
			}
		}
	}
	if len(rows) == 0 {
		return
	}

	w.ordinal++
	w.emit(flow.FlowBlock{
		ID:    fmt.Sprintf("tbl-%d", w.ordinal),
		Kind:  flow.BlockTable,
		Table: &flow.TableBlock{Rows: rows},
	}, &track.Node{Children: rowNodes})
}

func (w *walker) tableRows(section *html.Node, header bool) ([]flow.TableRow, []*track.Node) {
	var rows []flow.TableRow
	var nodes []*track.Node
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			if row, node, ok := w.tableRow(c, header); ok {
				rows = append(rows, row)
				nodes = append(nodes, node)
			}
		}
	}
	return rows, nodes
}

// tableRow converts one tr element. Rows without cells are dropped; a
// row of th cells marks itself as a header row.
func (w *walker) tableRow(tr *html.Node, header bool) (flow.TableRow, *track.Node, bool) {
	row := flow.TableRow{Header: header}
	node := &track.Node{}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}

		font := w.config.BaseFont
		if c.Data == "th" {
			font.Weight = flow.WeightBold
			row.Header = true
		}

		runs, marks := w.cellRuns(c, font)
		cell := flow.TableCell{Runs: runs, Span: 1}
		for _, attr := range c.Attr {
			if attr.Key == "colspan" {
				if v, err := strconv.Atoi(attr.Val); err == nil && v > 1 {
					cell.Span = v
				}
			}
		}
		row.Cells = append(row.Cells, cell)
		node.Children = append(node.Children, &track.Node{
			Children: []*track.Node{{Children: textNodes(runs, marks)}},
		})
	}
	return row, node, len(row.Cells) > 0
}

// cellRuns collects a cell's styled text. Unlike inline collection it
// descends through block elements, turning their boundaries into
// spaces; nested tables are not flattened into the cell.
func (w *walker) cellRuns(td *html.Node, font flow.FontSig) ([]flow.Run, [][]track.Mark) {
	var b runBuilder
	var visit func(*html.Node, flow.FontSig, []track.Mark)
	visit = func(n *html.Node, font flow.FontSig, marks []track.Mark) {
		switch n.Type {
		case html.TextNode:
			b.text(n.Data, font, marks)
			return
		case html.ElementNode:
		default:
			return
		}

		if skipElement(n.Data) || n.Data == "table" {
			return
		}

		switch n.Data {
		case "b", "strong":
			font.Weight = flow.WeightBold
		case "i", "em":
			font.Style = flow.StyleItalic
		case "code", "kbd", "samp", "tt":
			font.Family = w.config.MonoFamily
		case "ins":
			marks = pushMark(marks, track.MarkInsertion, citeAttr(n))
		case "del":
			marks = pushMark(marks, track.MarkDeletion, citeAttr(n))
		case "br":
			b.hardBreak(font, marks)
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c, font, marks)
		}

		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			b.text(" ", font, marks)
		}
	}
	for c := td.FirstChild; c != nil; c = c.NextSibling {
		visit(c, font, w.blockMarks)
	}
	return b.finish()
}
