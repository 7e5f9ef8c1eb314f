package paginate

import "github.com/tsawler/typeset/flow"

// anchorAt records where a paragraph landed, for objects anchored to it
type anchorAt struct {
	page *flow.Page
	x    float64
	y    float64
}

// layoutParagraph flows one paragraph line by line. Consecutive lines in
// one column become one text fragment; a line that does not fit moves to
// the next column or page, and a line taller than the content area is
// placed anyway and overflows. Returns where the paragraph's top landed,
// which paragraph-anchored objects position against.
func (st *pageState) layoutParagraph(index int, blk *flow.FlowBlock, ms *flow.Measure) anchorAt {
	st.ensurePage()

	p := blk.Paragraph
	if p == nil {
		p = &flow.ParagraphBlock{}
	}

	var lines []flow.LineBox
	if ms.Paragraph != nil {
		lines = ms.Paragraph.Lines
	}
	if len(lines) == 0 && st.lines != nil {
		if cached, ok := st.lines.Lines(index); ok {
			lines = cached
		}
	}

	st.cursorY += p.SpacingBefore

	at := anchorAt{page: st.page, x: st.columnX() + p.Indent, y: st.cursorY}

	var frag *flow.Fragment
	flush := func() {
		if frag != nil {
			st.addFragment(*frag)
			frag = nil
		}
	}

	overflowed := false
	for li := range lines {
		line := lines[li]
		if !st.fits(line.Height) && !st.atBandTop() {
			flush()
			st.advanceColumn()
		}
		if !st.fits(line.Height) && !overflowed {
			st.warn(flow.WarnOverflow, index, "line taller than page content area")
			overflowed = true
		}
		if frag == nil {
			// Column geometry can change when the paragraph crosses onto
			// a page with pending section properties, so the fragment
			// width is resolved per column run.
			width := st.cols.width - p.Indent
			if width < 0 {
				width = st.cols.width
			}
			frag = &flow.Fragment{
				Kind:    flow.FragmentText,
				BlockID: blk.ID,
				Start:   line.Start,
				End:     line.End,
				X:       st.columnX() + p.Indent,
				Y:       st.cursorY,
				Width:   width,
				Text:    &flow.TextPayload{},
			}
			if li == 0 {
				at = anchorAt{page: st.page, x: frag.X, y: frag.Y}
			}
		}
		frag.Text.Lines = append(frag.Text.Lines, line)
		frag.End = line.End
		frag.Height += line.Height
		st.cursorY += line.Height
	}
	flush()

	st.cursorY += p.SpacingAfter
	return at
}

// boxSpec carries the placement knobs shared by images and drawings
type boxSpec struct {
	kind      flow.FragmentKind
	src       string
	fullWidth bool
	indent    float64
	margins   flow.Margins
}

// layoutBox places an image or drawing. The box is constrained to the
// column width preserving its aspect ratio, scaled down when taller than
// the page content area, and moved whole to the next column when it does
// not fit below the cursor. Boxes never split.
func (st *pageState) layoutBox(index int, blk *flow.FlowBlock, spec boxSpec, ms *flow.Measure) {
	st.ensurePage()

	mt := clampZero(spec.margins.Top)
	mr := clampZero(spec.margins.Right)
	mb := clampZero(spec.margins.Bottom)
	ml := clampZero(spec.margins.Left)

	w, h := ms.Size()
	w = clampZero(w)
	h = clampZero(h)

	maxW := st.cols.width - ml - mr
	if spec.fullWidth {
		maxW = st.cols.width - spec.indent
	}
	if maxW > 0 && w > maxW {
		h *= maxW / w
		w = maxW
	}

	maxH := st.section.ContentHeight()
	if maxH > 0 && h > maxH {
		w *= maxH / h
		h = maxH
	}

	total := mt + h + mb
	if !st.fits(total) && !st.atBandTop() {
		st.advanceColumn()
	}
	if !st.fits(total) {
		st.warn(flow.WarnOverflow, index, "object taller than page content area")
	}

	frag := flow.Fragment{
		Kind:    spec.kind,
		BlockID: blk.ID,
		Start:   blk.Start,
		End:     blk.End,
		X:       st.columnX() + ml + spec.indent,
		Y:       st.cursorY + mt,
		Width:   w,
		Height:  h,
	}
	switch spec.kind {
	case flow.FragmentImage:
		frag.Image = &flow.ImagePayload{Src: spec.src}
	case flow.FragmentDrawing:
		frag.Drawing = &flow.DrawingPayload{Src: spec.src}
	}
	st.addFragment(frag)

	st.cursorY += total
}

// layoutTable flows a table row by row. A row that does not fit moves
// whole to the next column; rows never split. Each column run of rows
// becomes one table fragment identifying the rows it covers.
func (st *pageState) layoutTable(index int, blk *flow.FlowBlock, ms *flow.Measure) {
	st.ensurePage()

	tm := ms.Table
	if tm == nil || len(tm.RowHeights) == 0 {
		return
	}

	width := tm.Width
	if width <= 0 || width > st.cols.width {
		width = st.cols.width
	}

	overflowed := false
	r := 0
	for r < len(tm.RowHeights) {
		if !st.fits(tm.RowHeights[r]) && !st.atBandTop() {
			st.advanceColumn()
		}

		first := r
		top := st.cursorY
		height := 0.0
		for r < len(tm.RowHeights) {
			rh := tm.RowHeights[r]
			if r > first && !st.fits(rh) {
				break
			}
			if !st.fits(rh) && !overflowed {
				st.warn(flow.WarnOverflow, index, "row taller than page content area")
				overflowed = true
			}
			height += rh
			st.cursorY += rh
			r++
		}

		st.addFragment(flow.Fragment{
			Kind:    flow.FragmentTable,
			BlockID: blk.ID,
			Start:   blk.Start,
			End:     blk.End,
			X:       st.columnX(),
			Y:       top,
			Width:   width,
			Height:  height,
			Table: &flow.TablePayload{
				ColumnWidths: tm.ColumnWidths,
				RowHeights:   tm.RowHeights[first:r],
				FirstRow:     first,
				RowCount:     r - first,
			},
		})
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
