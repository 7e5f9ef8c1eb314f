package paginate

import (
	"testing"

	"github.com/tsawler/typeset/flow"
)

func imageBlock(id string, w, h float64) (flow.FlowBlock, flow.Measure) {
	blk := flow.FlowBlock{
		ID:    id,
		Kind:  flow.BlockImage,
		Image: &flow.ImageBlock{Src: "media/" + id},
	}
	ms := flow.Measure{
		Kind: flow.BlockImage,
		Box:  &flow.BoxMeasure{Width: w, Height: h},
	}
	return blk, ms
}

func tableBlock(id string, colWidths, rowHeights []float64) (flow.FlowBlock, flow.Measure) {
	width, height := 0.0, 0.0
	for _, w := range colWidths {
		width += w
	}
	for _, h := range rowHeights {
		height += h
	}
	blk := flow.FlowBlock{
		ID:    id,
		Kind:  flow.BlockTable,
		Table: &flow.TableBlock{},
	}
	ms := flow.Measure{
		Kind: flow.BlockTable,
		Table: &flow.TableMeasure{
			ColumnWidths: colWidths,
			RowHeights:   rowHeights,
			Width:        width,
			Height:       height,
		},
	}
	return blk, ms
}

func TestLayoutImageConstrainedToColumn(t *testing.T) {
	blk, ms := imageBlock("img", 300, 60)

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	frag := result.Pages[0].Fragments[0]
	if frag.Kind != flow.FragmentImage {
		t.Fatalf("fragment kind = %v, want Image", frag.Kind)
	}
	if frag.Width != 180 || frag.Height != 36 {
		t.Errorf("fragment size = %vx%v, want 180x36 (aspect kept)", frag.Width, frag.Height)
	}
	if frag.X != 10 || frag.Y != 10 {
		t.Errorf("fragment at (%v, %v), want (10, 10)", frag.X, frag.Y)
	}
	if frag.Image == nil || frag.Image.Src != "media/img" {
		t.Errorf("fragment payload = %+v, want Src media/img", frag.Image)
	}
}

func TestLayoutImageMargins(t *testing.T) {
	blk, ms := imageBlock("img", 300, 60)
	blk.Image.Margins = flow.Margins{Top: 5, Right: 10, Bottom: 5, Left: 20}
	after, afterMs := imageBlock("next", 10, 10)

	result := testPaginator().Layout(
		[]flow.FlowBlock{blk, after},
		[]flow.Measure{ms, afterMs},
	)

	frags := result.Pages[0].Fragments
	if frags[0].Width != 150 || frags[0].Height != 30 {
		t.Errorf("fragment size = %vx%v, want 150x30", frags[0].Width, frags[0].Height)
	}
	if frags[0].X != 30 || frags[0].Y != 15 {
		t.Errorf("fragment at (%v, %v), want (30, 15)", frags[0].X, frags[0].Y)
	}
	// Top and bottom margins advance the cursor past the box.
	if frags[1].Y != 50 {
		t.Errorf("next fragment Y = %v, want 50", frags[1].Y)
	}
}

func TestLayoutImageNegativeMarginsClamp(t *testing.T) {
	blk, ms := imageBlock("img", 300, 60)
	blk.Image.Margins = flow.Margins{Top: -5, Right: -5, Bottom: -5, Left: -5}

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	frag := result.Pages[0].Fragments[0]
	if frag.X != 10 || frag.Y != 10 {
		t.Errorf("fragment at (%v, %v), want (10, 10) with clamped margins", frag.X, frag.Y)
	}
	if frag.Width != 180 || frag.Height != 36 {
		t.Errorf("fragment size = %vx%v, want 180x36", frag.Width, frag.Height)
	}
}

func TestLayoutImageHeightClamp(t *testing.T) {
	blk, ms := imageBlock("img", 50, 200)

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	frag := result.Pages[0].Fragments[0]
	if frag.Width != 20 || frag.Height != 80 {
		t.Errorf("fragment size = %vx%v, want 20x80 (height clamped)", frag.Width, frag.Height)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none after clamping", result.Warnings)
	}
}

func TestLayoutImageMovesWholeToNextPage(t *testing.T) {
	para, paraMs := paragraphBlock("p1", makeLines(3, 20, 0))
	img, imgMs := imageBlock("img", 50, 30)

	result := testPaginator().Layout(
		[]flow.FlowBlock{para, img},
		[]flow.Measure{paraMs, imgMs},
	)

	if got := result.PageCount(); got != 2 {
		t.Fatalf("PageCount() = %d, want 2", got)
	}
	frag := result.Pages[1].Fragments[0]
	if frag.Kind != flow.FragmentImage || frag.Y != 10 {
		t.Errorf("page 2 fragment = %v at Y %v, want Image at 10", frag.Kind, frag.Y)
	}
}

func TestLayoutImageOverflowWarning(t *testing.T) {
	blk, ms := imageBlock("img", 40, 60)
	blk.Image.Margins = flow.Margins{Top: 20, Bottom: 20}

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	if got := result.PageCount(); got != 1 {
		t.Fatalf("PageCount() = %d, want 1 (placed anyway)", got)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != flow.WarnOverflow {
		t.Fatalf("warnings = %v, want one Overflow", result.Warnings)
	}
	if frag := result.Pages[0].Fragments[0]; frag.Y != 30 {
		t.Errorf("fragment Y = %v, want 30", frag.Y)
	}
}

func TestLayoutFullWidthDrawing(t *testing.T) {
	blk := flow.FlowBlock{
		ID:   "d1",
		Kind: flow.BlockDrawing,
		Drawing: &flow.DrawingBlock{
			Src:       "vector/d1",
			FullWidth: true,
			Indent:    30,
		},
	}
	ms := flow.Measure{Kind: flow.BlockDrawing, Box: &flow.BoxMeasure{Width: 500, Height: 50}}

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	frag := result.Pages[0].Fragments[0]
	if frag.Kind != flow.FragmentDrawing {
		t.Fatalf("fragment kind = %v, want Drawing", frag.Kind)
	}
	if frag.Width != 150 || frag.Height != 15 {
		t.Errorf("fragment size = %vx%v, want 150x15", frag.Width, frag.Height)
	}
	if frag.X != 40 {
		t.Errorf("fragment X = %v, want 40 (indent)", frag.X)
	}
	if frag.Drawing == nil || frag.Drawing.Src != "vector/d1" {
		t.Errorf("fragment payload = %+v, want Src vector/d1", frag.Drawing)
	}
}

func TestLayoutDrawingMissingMeasure(t *testing.T) {
	blk := flow.FlowBlock{ID: "d1", Kind: flow.BlockDrawing, Drawing: &flow.DrawingBlock{}}
	ms := flow.Measure{Kind: flow.BlockDrawing}

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	frag := result.Pages[0].Fragments[0]
	if frag.Width != 0 || frag.Height != 0 {
		t.Errorf("fragment size = %vx%v, want 0x0", frag.Width, frag.Height)
	}
	if frag.X != 10 || frag.Y != 10 {
		t.Errorf("fragment at (%v, %v), want (10, 10)", frag.X, frag.Y)
	}
}

func TestLayoutTableRowChunks(t *testing.T) {
	blk, ms := tableBlock("t1", []float64{60, 60}, []float64{30, 30, 30, 30, 30})

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	if got := result.PageCount(); got != 3 {
		t.Fatalf("PageCount() = %d, want 3", got)
	}

	wantChunks := []struct {
		firstRow int
		rowCount int
		height   float64
	}{
		{0, 2, 60},
		{2, 2, 60},
		{4, 1, 30},
	}
	for i, want := range wantChunks {
		frag := result.Pages[i].Fragments[0]
		if frag.Kind != flow.FragmentTable {
			t.Fatalf("page %d fragment kind = %v, want Table", i+1, frag.Kind)
		}
		if frag.Table.FirstRow != want.firstRow || frag.Table.RowCount != want.rowCount {
			t.Errorf("page %d chunk rows = (%d, %d), want (%d, %d)",
				i+1, frag.Table.FirstRow, frag.Table.RowCount, want.firstRow, want.rowCount)
		}
		if frag.Height != want.height {
			t.Errorf("page %d chunk height = %v, want %v", i+1, frag.Height, want.height)
		}
		if frag.Y != 10 {
			t.Errorf("page %d chunk Y = %v, want 10", i+1, frag.Y)
		}
		if len(frag.Table.RowHeights) != want.rowCount {
			t.Errorf("page %d chunk row heights = %d, want %d",
				i+1, len(frag.Table.RowHeights), want.rowCount)
		}
	}
}

func TestLayoutTableRowNeverSplits(t *testing.T) {
	para, paraMs := paragraphBlock("p1", makeLines(2, 20, 0))
	tbl, tblMs := tableBlock("t1", []float64{90}, []float64{30, 30})

	result := testPaginator().Layout(
		[]flow.FlowBlock{para, tbl},
		[]flow.Measure{paraMs, tblMs},
	)

	if got := result.PageCount(); got != 2 {
		t.Fatalf("PageCount() = %d, want 2", got)
	}

	first := result.Pages[0].Fragments[1]
	if first.Y != 50 || first.Table.RowCount != 1 {
		t.Errorf("page 1 chunk Y = %v rows = %d, want 50 and 1", first.Y, first.Table.RowCount)
	}
	second := result.Pages[1].Fragments[0]
	if second.Y != 10 || second.Table.FirstRow != 1 {
		t.Errorf("page 2 chunk Y = %v first row = %d, want 10 and 1", second.Y, second.Table.FirstRow)
	}
}

func TestLayoutTableOversizedRow(t *testing.T) {
	blk, ms := tableBlock("t1", []float64{100}, []float64{100})

	result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

	if got := result.PageCount(); got != 1 {
		t.Fatalf("PageCount() = %d, want 1 (placed anyway)", got)
	}
	frag := result.Pages[0].Fragments[0]
	if frag.Height != 100 {
		t.Errorf("fragment height = %v, want 100", frag.Height)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != flow.WarnOverflow {
		t.Errorf("warnings = %v, want one Overflow", result.Warnings)
	}
}

func TestLayoutTableWidth(t *testing.T) {
	tests := []struct {
		name      string
		colWidths []float64
		want      float64
	}{
		{"narrower than column", []float64{40, 50}, 90},
		{"wider than column", []float64{300, 300}, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blk, ms := tableBlock("t1", tt.colWidths, []float64{20})
			result := testPaginator().Layout([]flow.FlowBlock{blk}, []flow.Measure{ms})

			frag := result.Pages[0].Fragments[0]
			if frag.Width != tt.want {
				t.Errorf("fragment width = %v, want %v", frag.Width, tt.want)
			}
		})
	}
}
