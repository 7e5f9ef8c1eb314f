package paginate

import (
	"testing"

	"github.com/tsawler/typeset/flow"
)

func anchoredImage(id string, ref flow.AnchorRef, offsetX, offsetY, w, h float64) (flow.FlowBlock, flow.Measure) {
	blk := flow.FlowBlock{
		ID:   id,
		Kind: flow.BlockImage,
		Anchor: &flow.Anchor{
			Anchored:   true,
			RelativeTo: ref,
			OffsetX:    offsetX,
			OffsetY:    offsetY,
		},
		Image: &flow.ImageBlock{Src: "media/" + id},
	}
	ms := flow.Measure{Kind: flow.BlockImage, Box: &flow.BoxMeasure{Width: w, Height: h}}
	return blk, ms
}

func TestNearestParagraph(t *testing.T) {
	para := flow.FlowBlock{Kind: flow.BlockParagraph}
	img := flow.FlowBlock{Kind: flow.BlockImage}

	tests := []struct {
		name   string
		blocks []flow.FlowBlock
		index  int
		want   int
	}{
		{"preceding", []flow.FlowBlock{para, img, para}, 1, 0},
		{"nearest preceding wins", []flow.FlowBlock{para, para, img}, 2, 1},
		{"following fallback", []flow.FlowBlock{img, para}, 0, 1},
		{"no paragraph", []flow.FlowBlock{img}, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestParagraph(tt.blocks, tt.index); got != tt.want {
				t.Errorf("nearestParagraph(%d) = %d, want %d", tt.index, got, tt.want)
			}
		})
	}
}

func TestCollectAnchorPartition(t *testing.T) {
	para, paraMs := paragraphBlock("p1", makeLines(1, 20, 0))
	pageImg, pageImgMs := anchoredImage("page", flow.AnchorPage, 0, 0, 20, 10)
	marginImg, marginImgMs := anchoredImage("margin", flow.AnchorMargin, 0, 0, 20, 10)
	paraImg, paraImgMs := anchoredImage("para", flow.AnchorParagraph, 0, 0, 20, 10)
	tbl := flow.FlowBlock{
		ID:     "t1",
		Kind:   flow.BlockTable,
		Anchor: &flow.Anchor{Anchored: true, RelativeTo: flow.AnchorPage},
		Table:  &flow.TableBlock{},
	}
	tblMs := flow.Measure{Kind: flow.BlockTable, Table: &flow.TableMeasure{Width: 80, Height: 40}}

	blocks := []flow.FlowBlock{para, pageImg, marginImg, paraImg, tbl}
	measures := []flow.Measure{paraMs, pageImgMs, marginImgMs, paraImgMs, tblMs}

	if got := CollectPageAnchors(blocks, measures); len(got) != 2 {
		t.Errorf("CollectPageAnchors() = %d anchors, want 2", len(got))
	}
	drawings := CollectAnchoredDrawings(blocks, measures)
	if len(drawings[0]) != 1 {
		t.Errorf("CollectAnchoredDrawings()[0] = %d, want 1", len(drawings[0]))
	}

	// Tables never pre-register; even a page-relative one attaches to
	// its nearest paragraph.
	tables := CollectAnchoredTables(blocks, measures)
	if len(tables[0]) != 1 {
		t.Errorf("CollectAnchoredTables()[0] = %d, want 1", len(tables[0]))
	}
}

func TestLayoutPageAnchor(t *testing.T) {
	para, paraMs := paragraphBlock("p1", makeLines(1, 20, 0))
	img, imgMs := anchoredImage("img", flow.AnchorPage, 30, 40, 20, 10)

	result := testPaginator().Layout(
		[]flow.FlowBlock{para, img},
		[]flow.Measure{paraMs, imgMs},
	)

	frags := result.Pages[0].Fragments
	if len(frags) != 2 {
		t.Fatalf("fragment count = %d, want 2", len(frags))
	}

	// Page anchors land first, under the body text.
	anchor := frags[0]
	if anchor.Kind != flow.FragmentImage {
		t.Fatalf("first fragment kind = %v, want Image", anchor.Kind)
	}
	if anchor.X != 30 || anchor.Y != 40 {
		t.Errorf("anchor at (%v, %v), want (30, 40)", anchor.X, anchor.Y)
	}
	if anchor.Width != 20 || anchor.Height != 10 {
		t.Errorf("anchor size = %vx%v, want 20x10", anchor.Width, anchor.Height)
	}
	if anchor.ZIndex != -1 {
		t.Errorf("anchor ZIndex = %d, want -1", anchor.ZIndex)
	}
	if result.Stats.AnchorCount != 1 {
		t.Errorf("Stats.AnchorCount = %d, want 1", result.Stats.AnchorCount)
	}
}

func TestLayoutMarginAnchorOffsets(t *testing.T) {
	para, paraMs := paragraphBlock("p1", makeLines(1, 20, 0))
	img, imgMs := anchoredImage("img", flow.AnchorMargin, 5, 6, 20, 10)

	result := testPaginator().Layout(
		[]flow.FlowBlock{para, img},
		[]flow.Measure{paraMs, imgMs},
	)

	anchor := result.Pages[0].Fragments[0]
	if anchor.X != 15 || anchor.Y != 16 {
		t.Errorf("anchor at (%v, %v), want (15, 16) inside the margins", anchor.X, anchor.Y)
	}
}

func TestLayoutParagraphAnchoredDrawing(t *testing.T) {
	para, paraMs := paragraphBlock("p1", makeLines(1, 20, 0))
	drawing := flow.FlowBlock{
		ID:   "d1",
		Kind: flow.BlockDrawing,
		Anchor: &flow.Anchor{
			Anchored:   true,
			RelativeTo: flow.AnchorParagraph,
			OffsetX:    15,
			OffsetY:    25,
		},
		Drawing: &flow.DrawingBlock{Src: "vector/d1"},
	}
	drawingMs := flow.Measure{Kind: flow.BlockDrawing, Box: &flow.BoxMeasure{Width: 30, Height: 20}}

	result := testPaginator().Layout(
		[]flow.FlowBlock{para, drawing},
		[]flow.Measure{paraMs, drawingMs},
	)

	if got := result.PageCount(); got != 1 {
		t.Fatalf("PageCount() = %d, want 1 (anchored objects leave the flow)", got)
	}
	frags := result.Pages[0].Fragments
	if len(frags) != 2 {
		t.Fatalf("fragment count = %d, want 2", len(frags))
	}

	anchor := frags[1]
	if anchor.Kind != flow.FragmentDrawing {
		t.Fatalf("anchor kind = %v, want Drawing", anchor.Kind)
	}
	if anchor.X != 25 || anchor.Y != 35 {
		t.Errorf("anchor at (%v, %v), want (25, 35) from the paragraph top", anchor.X, anchor.Y)
	}
	if anchor.ZIndex != 1 {
		t.Errorf("anchor ZIndex = %d, want 1 (above body text)", anchor.ZIndex)
	}
}

func TestLayoutAnchorAttachesForward(t *testing.T) {
	drawing := flow.FlowBlock{
		ID:      "d1",
		Kind:    flow.BlockDrawing,
		Anchor:  &flow.Anchor{Anchored: true, RelativeTo: flow.AnchorParagraph},
		Drawing: &flow.DrawingBlock{},
	}
	drawingMs := flow.Measure{Kind: flow.BlockDrawing, Box: &flow.BoxMeasure{Width: 30, Height: 20}}
	para, paraMs := paragraphBlock("p1", makeLines(1, 20, 0))

	result := testPaginator().Layout(
		[]flow.FlowBlock{drawing, para},
		[]flow.Measure{drawingMs, paraMs},
	)

	frags := result.Pages[0].Fragments
	if len(frags) != 2 {
		t.Fatalf("fragment count = %d, want 2", len(frags))
	}
	anchor := frags[1]
	if anchor.Kind != flow.FragmentDrawing || anchor.X != 10 || anchor.Y != 10 {
		t.Errorf("anchor = %v at (%v, %v), want Drawing at (10, 10)", anchor.Kind, anchor.X, anchor.Y)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}
}

func TestLayoutDroppedAnchorWarning(t *testing.T) {
	drawing := flow.FlowBlock{
		ID:      "d1",
		Kind:    flow.BlockDrawing,
		Anchor:  &flow.Anchor{Anchored: true, RelativeTo: flow.AnchorParagraph},
		Drawing: &flow.DrawingBlock{},
	}
	drawingMs := flow.Measure{Kind: flow.BlockDrawing, Box: &flow.BoxMeasure{Width: 30, Height: 20}}

	result := testPaginator().Layout([]flow.FlowBlock{drawing}, []flow.Measure{drawingMs})

	if got := result.PageCount(); got != 0 {
		t.Errorf("PageCount() = %d, want 0", got)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one", result.Warnings)
	}
	w := result.Warnings[0]
	if w.Code != flow.WarnUnanchored || w.BlockIndex != 0 {
		t.Errorf("warning = %+v, want Unanchored for block 0", w)
	}
}

func TestLayoutOnlyPageAnchors(t *testing.T) {
	img, imgMs := anchoredImage("img", flow.AnchorPage, 0, 0, 20, 10)

	result := testPaginator().Layout([]flow.FlowBlock{img}, []flow.Measure{imgMs})

	if got := result.PageCount(); got != 1 {
		t.Fatalf("PageCount() = %d, want 1 (a page for the anchors)", got)
	}
	if len(result.Pages[0].Fragments) != 1 {
		t.Errorf("fragment count = %d, want 1", len(result.Pages[0].Fragments))
	}
}

func TestLayoutAnchoredTablePayload(t *testing.T) {
	para, paraMs := paragraphBlock("p1", makeLines(1, 20, 0))
	tbl := flow.FlowBlock{
		ID:     "t1",
		Kind:   flow.BlockTable,
		Anchor: &flow.Anchor{Anchored: true, RelativeTo: flow.AnchorParagraph, OffsetX: 40},
		Table:  &flow.TableBlock{},
	}
	tblMs := flow.Measure{
		Kind: flow.BlockTable,
		Table: &flow.TableMeasure{
			ColumnWidths: []float64{40, 40},
			RowHeights:   []float64{20, 20},
			Width:        80,
			Height:       40,
		},
	}

	result := testPaginator().Layout(
		[]flow.FlowBlock{para, tbl},
		[]flow.Measure{paraMs, tblMs},
	)

	frags := result.Pages[0].Fragments
	if len(frags) != 2 {
		t.Fatalf("fragment count = %d, want 2", len(frags))
	}
	anchor := frags[1]
	if anchor.Kind != flow.FragmentTable {
		t.Fatalf("anchor kind = %v, want Table", anchor.Kind)
	}
	if anchor.X != 50 || anchor.Y != 10 {
		t.Errorf("anchor at (%v, %v), want (50, 10)", anchor.X, anchor.Y)
	}
	if anchor.Table.RowCount != 2 || len(anchor.Table.ColumnWidths) != 2 {
		t.Errorf("anchor payload = %+v, want 2 rows and 2 columns", anchor.Table)
	}
}
