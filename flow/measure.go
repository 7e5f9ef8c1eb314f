package flow

// LineRun is the portion of a source run that landed on one line. RunIndex
// points back into the paragraph's Runs; Text is the portion itself.
type LineRun struct {
	RunIndex int
	Text     string
	Width    float64
	Token    Token
}

// LineBox is one laid-out line of a paragraph. Start and End are document
// positions covering the line's text.
type LineBox struct {
	Runs   []LineRun
	Width  float64
	Height float64
	Ascent float64
	Start  int
	End    int
}

// Text returns the concatenated text of the line
func (lb LineBox) Text() string {
	s := ""
	for _, r := range lb.Runs {
		s += r.Text
	}
	return s
}

// ParagraphMeasure carries the measured line boxes of a paragraph
type ParagraphMeasure struct {
	Lines  []LineBox
	Width  float64
	Height float64
}

// TableMeasure carries resolved table geometry. ColumnWidths and RowHeights
// are in points; Width and Height are their sums.
type TableMeasure struct {
	ColumnWidths []float64
	RowHeights   []float64
	Width        float64
	Height       float64
}

// BoxMeasure carries the intrinsic size of an image or drawing
type BoxMeasure struct {
	Width  float64
	Height float64
}

// Measure is the measurement paired with the block at the same index. Kind
// mirrors the block's Kind; the matching payload pointer is set.
type Measure struct {
	Kind BlockKind

	Paragraph *ParagraphMeasure
	Table     *TableMeasure
	Box       *BoxMeasure
}

// Size returns the overall width and height of the measure, zero when the
// payload for its kind is missing
func (m Measure) Size() (width, height float64) {
	switch m.Kind {
	case BlockParagraph:
		if m.Paragraph != nil {
			return m.Paragraph.Width, m.Paragraph.Height
		}
	case BlockTable:
		if m.Table != nil {
			return m.Table.Width, m.Table.Height
		}
	case BlockImage, BlockDrawing:
		if m.Box != nil {
			return m.Box.Width, m.Box.Height
		}
	}
	return 0, 0
}
