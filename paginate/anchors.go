package paginate

import "github.com/tsawler/typeset/flow"

// AnchorSet partitions a document's anchored objects for placement
type AnchorSet struct {
	// Page holds page- and margin-relative drawings and images, in
	// document order.
	Page []flow.Anchored

	// Drawings and Tables hold paragraph-relative objects keyed by the
	// block index of the paragraph each attaches to.
	Drawings map[int][]flow.Anchored
	Tables   map[int][]flow.Anchored

	// Dropped holds the block indexes of objects with no paragraph to
	// attach to.
	Dropped []int
}

// CollectPageAnchors returns the page- and margin-relative drawings and
// images in document order, with their measured sizes
func CollectPageAnchors(blocks []flow.FlowBlock, measures []flow.Measure) []flow.Anchored {
	return collectAnchors(blocks, measures).Page
}

// CollectAnchoredDrawings returns paragraph-relative drawings and images
// keyed by the paragraph block index each attaches to
func CollectAnchoredDrawings(blocks []flow.FlowBlock, measures []flow.Measure) map[int][]flow.Anchored {
	return collectAnchors(blocks, measures).Drawings
}

// CollectAnchoredTables returns paragraph-relative tables keyed by the
// paragraph block index each attaches to
func CollectAnchoredTables(blocks []flow.FlowBlock, measures []flow.Measure) map[int][]flow.Anchored {
	return collectAnchors(blocks, measures).Tables
}

// collectAnchors partitions anchored blocks. Page- and margin-relative
// drawings and images keep document order. Everything else, tables
// included, attaches to the nearest preceding paragraph, falling back
// to the nearest following one; when the document has no paragraph at
// all it is dropped.
func collectAnchors(blocks []flow.FlowBlock, measures []flow.Measure) AnchorSet {
	set := AnchorSet{}

	n := len(blocks)
	if len(measures) < n {
		n = len(measures)
	}

	for i := 0; i < n; i++ {
		blk := &blocks[i]
		if blk.Anchor == nil || !blk.Anchor.Anchored || !anchorable(blk.Kind) {
			continue
		}

		w, h := measures[i].Size()
		a := flow.Anchored{
			BlockIndex: i,
			Block:      blk,
			Measure:    &measures[i],
			Width:      w,
			Height:     h,
		}

		pageRelative := blk.Anchor.RelativeTo == flow.AnchorPage ||
			blk.Anchor.RelativeTo == flow.AnchorMargin
		if pageRelative && blk.Kind != flow.BlockTable {
			set.Page = append(set.Page, a)
			continue
		}

		owner := nearestParagraph(blocks, i)
		if owner < 0 {
			set.Dropped = append(set.Dropped, i)
			continue
		}
		if blk.Kind == flow.BlockTable {
			if set.Tables == nil {
				set.Tables = make(map[int][]flow.Anchored)
			}
			set.Tables[owner] = append(set.Tables[owner], a)
		} else {
			if set.Drawings == nil {
				set.Drawings = make(map[int][]flow.Anchored)
			}
			set.Drawings[owner] = append(set.Drawings[owner], a)
		}
	}
	return set
}

// nearestParagraph returns the block index of the paragraph an object at
// index anchors to: the nearest preceding paragraph, or failing that the
// nearest following one, or -1 when the document has none
func nearestParagraph(blocks []flow.FlowBlock, index int) int {
	for j := index - 1; j >= 0; j-- {
		if blocks[j].Kind == flow.BlockParagraph {
			return j
		}
	}
	for j := index + 1; j < len(blocks); j++ {
		if blocks[j].Kind == flow.BlockParagraph {
			return j
		}
	}
	return -1
}

// placePageAnchors positions page- and margin-relative objects on the
// first page, under the body text
func (st *pageState) placePageAnchors() {
	for _, a := range st.pageAnchors {
		x := a.Block.Anchor.OffsetX
		y := a.Block.Anchor.OffsetY
		if a.Block.Anchor.RelativeTo == flow.AnchorMargin {
			x += st.section.Margins.Left
			y += st.section.Margins.Top
		}
		st.page.AddFragment(anchoredFragment(a, x, y, -1))
		st.fragments++
		st.anchorsPlaced++
	}
}

// placeAnchored positions a paragraph-relative object against the top
// left of the paragraph it attaches to, above the body text. The target
// page may already be closed; anchored objects land on it regardless.
func (st *pageState) placeAnchored(a flow.Anchored, at anchorAt) {
	if at.page == nil {
		return
	}
	x := at.x + a.Block.Anchor.OffsetX
	y := at.y + a.Block.Anchor.OffsetY
	at.page.AddFragment(anchoredFragment(a, x, y, 1))
	st.fragments++
	st.anchorsPlaced++
}

// anchoredFragment builds the positioned fragment for an anchored object
func anchoredFragment(a flow.Anchored, x, y float64, z int) flow.Fragment {
	blk := a.Block
	f := flow.Fragment{
		BlockID: blk.ID,
		Start:   blk.Start,
		End:     blk.End,
		X:       x,
		Y:       y,
		Width:   a.Width,
		Height:  a.Height,
		ZIndex:  z,
	}
	switch blk.Kind {
	case flow.BlockImage:
		f.Kind = flow.FragmentImage
		f.Image = &flow.ImagePayload{}
		if blk.Image != nil {
			f.Image.Src = blk.Image.Src
		}
	case flow.BlockDrawing:
		f.Kind = flow.FragmentDrawing
		f.Drawing = &flow.DrawingPayload{}
		if blk.Drawing != nil {
			f.Drawing.Src = blk.Drawing.Src
		}
	case flow.BlockTable:
		f.Kind = flow.FragmentTable
		f.Table = &flow.TablePayload{}
		if a.Measure != nil && a.Measure.Table != nil {
			f.Table.ColumnWidths = a.Measure.Table.ColumnWidths
			f.Table.RowHeights = a.Measure.Table.RowHeights
			f.Table.RowCount = len(a.Measure.Table.RowHeights)
		}
	}
	return f
}
