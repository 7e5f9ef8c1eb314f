package typeset

import (
	"github.com/tsawler/typeset/flow"
	"github.com/tsawler/typeset/tables"
)

// cellPadding is the space between a table cell's edge and its text, in
// points, on each side
const cellPadding = 4.0

// MeasureBlocks produces one measure per block against the engine's
// section geometry: paragraphs break into lines at the column width,
// tables get fitted column widths and content-driven row heights, and
// images and drawings pass their intrinsic sizes through. Paragraph
// lines land in the engine's line cache, so indexes already cached (by
// Warm or an earlier pass) are not re-broken.
func (e *Engine) MeasureBlocks(blocks []flow.FlowBlock) []flow.Measure {
	width := e.columnWidth()

	measures := make([]flow.Measure, len(blocks))
	for i := range blocks {
		blk := &blocks[i]
		measures[i] = flow.Measure{Kind: blk.Kind}

		switch blk.Kind {
		case flow.BlockParagraph:
			measures[i].Paragraph = e.measureParagraph(i, blk, width)
		case flow.BlockTable:
			measures[i].Table = e.measureTable(blk, width)
		case flow.BlockImage:
			box := &flow.BoxMeasure{}
			if blk.Image != nil {
				box.Width = blk.Image.Width
				box.Height = blk.Image.Height
			}
			measures[i].Box = box
		case flow.BlockDrawing:
			box := &flow.BoxMeasure{}
			if blk.Drawing != nil {
				box.Width = blk.Drawing.Width
				box.Height = blk.Drawing.Height
			}
			measures[i].Box = box
		}
	}
	return measures
}

// measureParagraph breaks one paragraph into lines, through the line
// cache
func (e *Engine) measureParagraph(index int, blk *flow.FlowBlock, width float64) *flow.ParagraphMeasure {
	p := blk.Paragraph
	if p == nil {
		p = &flow.ParagraphBlock{}
	}

	lines, ok := e.lines.Lines(index)
	if !ok {
		lines = e.breaker.Break(p, indentedWidth(width, p.Indent), blk.Start)
		e.lines.Store(index, lines)
	}

	pm := &flow.ParagraphMeasure{Lines: lines}
	for _, ln := range lines {
		if ln.Width > pm.Width {
			pm.Width = ln.Width
		}
		pm.Height += ln.Height
	}
	return pm
}

// measureTable fits the table's columns into the given width and
// measures each row at the height of its tallest cell
func (e *Engine) measureTable(blk *flow.FlowBlock, width float64) *flow.TableMeasure {
	t := blk.Table
	if t == nil || len(t.Rows) == 0 {
		return &flow.TableMeasure{}
	}

	preferred := make([]float64, tableColumnCount(t))
	copy(preferred, t.PreferredWidths)
	widths := tables.FitColumns(width, preferred)

	tm := &flow.TableMeasure{ColumnWidths: widths}
	for _, w := range widths {
		tm.Width += w
	}

	tm.RowHeights = make([]float64, len(t.Rows))
	for ri := range t.Rows {
		tm.RowHeights[ri] = e.rowHeight(&t.Rows[ri], widths)
		tm.Height += tm.RowHeights[ri]
	}
	return tm
}

// rowHeight measures one row: each cell's runs break into the width of
// the columns the cell spans, and the tallest cell sets the height
func (e *Engine) rowHeight(row *flow.TableRow, widths []float64) float64 {
	h := 0.0
	col := 0
	for ci := range row.Cells {
		cell := &row.Cells[ci]
		span := cell.Span
		if span < 1 {
			span = 1
		}
		cellWidth := 0.0
		for s := 0; s < span && col+s < len(widths); s++ {
			cellWidth += widths[col+s]
		}
		col += span

		avail := cellWidth - 2*cellPadding
		if avail < 0 {
			avail = cellWidth
		}
		lines := e.breaker.Break(&flow.ParagraphBlock{Runs: cell.Runs}, avail, 0)

		ch := 2 * cellPadding
		for _, ln := range lines {
			ch += ln.Height
		}
		if ch > h {
			h = ch
		}
	}
	return h
}

// columnWidth returns the width one column of the base section offers
func (e *Engine) columnWidth() float64 {
	sec := e.config.Section
	cols := sec.Columns.Normalize()
	w := sec.ContentWidth()
	if cols.Count > 1 {
		w = (w - cols.Gap*float64(cols.Count-1)) / float64(cols.Count)
	}
	if w < 0 {
		return 0
	}
	return w
}

// indentedWidth is the text width left after paragraph indentation. An
// indent wider than the column falls back to the full width, matching
// paragraph placement.
func indentedWidth(width, indent float64) float64 {
	w := width - indent
	if w < 0 {
		return width
	}
	return w
}

// tableColumnCount is the widest row's column count, spans included
func tableColumnCount(t *flow.TableBlock) int {
	n := 0
	for _, row := range t.Rows {
		c := 0
		for _, cell := range row.Cells {
			span := cell.Span
			if span < 1 {
				span = 1
			}
			c += span
		}
		if c > n {
			n = c
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}
