package flow

import (
	"fmt"
	"strings"
)

// FragmentKind represents the kind of positioned fragment
type FragmentKind int

const (
	FragmentText FragmentKind = iota
	FragmentImage
	FragmentDrawing
	FragmentTable
)

func (fk FragmentKind) String() string {
	switch fk {
	case FragmentImage:
		return "Image"
	case FragmentDrawing:
		return "Drawing"
	case FragmentTable:
		return "Table"
	default:
		return "Text"
	}
}

// TextPayload carries the lines a text fragment covers
type TextPayload struct {
	Lines []LineBox
}

// ImagePayload carries the content reference of an image fragment
type ImagePayload struct {
	Src string
}

// DrawingPayload carries the content reference of a drawing fragment
type DrawingPayload struct {
	Src string
}

// TablePayload carries the geometry of one table chunk. FirstRow and
// RowCount identify the rows this chunk covers when a table continues
// across columns or pages.
type TablePayload struct {
	ColumnWidths []float64
	RowHeights   []float64
	FirstRow     int
	RowCount     int
}

// Fragment is one absolutely positioned piece of a page. X and Y are
// page coordinates (top-left origin); Start and End are the document
// positions the fragment covers, which hit-testing keys on.
type Fragment struct {
	Kind    FragmentKind
	BlockID string
	Start   int
	End     int

	X      float64
	Y      float64
	Width  float64
	Height float64
	ZIndex int

	Text    *TextPayload
	Image   *ImagePayload
	Drawing *DrawingPayload
	Table   *TablePayload
}

// Bounds returns the fragment's bounding box
func (f *Fragment) Bounds() BBox {
	return BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Page is one output page. Number is 1-based. Fragments are in placement
// order; anchored objects placed below body text carry negative ZIndex.
type Page struct {
	Number    int
	Size      PageSize
	Margins   Margins
	Columns   Columns
	Fragments []Fragment
}

// ContentBottom returns the Y coordinate of the bottom margin line
func (p *Page) ContentBottom() float64 {
	return p.Size.Height - p.Margins.Bottom
}

// AddFragment appends a fragment to the page
func (p *Page) AddFragment(f Fragment) {
	p.Fragments = append(p.Fragments, f)
}

// FragmentsAt returns the fragments whose bounds contain the point, in
// placement order
func (p *Page) FragmentsAt(pt Point) []*Fragment {
	var hits []*Fragment
	for i := range p.Fragments {
		if p.Fragments[i].Bounds().Contains(pt) {
			hits = append(hits, &p.Fragments[i])
		}
	}
	return hits
}

// LayoutStats summarizes one layout pass
type LayoutStats struct {
	BlockCount    int
	PageCount     int
	FragmentCount int
	AnchorCount   int
}

// WarningCode classifies a non-fatal layout degradation
type WarningCode int

const (
	// WarnTruncatedInput means blocks and measures had different lengths
	// and the excess was ignored.
	WarnTruncatedInput WarningCode = iota
	// WarnUnanchored means an anchored object had no paragraph to attach
	// to and was dropped.
	WarnUnanchored
	// WarnOverflow means a block taller than the page content area was
	// placed anyway and overflows.
	WarnOverflow
)

func (wc WarningCode) String() string {
	switch wc {
	case WarnUnanchored:
		return "Unanchored"
	case WarnOverflow:
		return "Overflow"
	default:
		return "TruncatedInput"
	}
}

// Warning records a non-fatal issue encountered during layout. BlockIndex
// is -1 when the warning is not about a specific block.
type Warning struct {
	Code       WarningCode
	Message    string
	BlockIndex int
}

func (w Warning) String() string {
	if w.BlockIndex >= 0 {
		return fmt.Sprintf("%s (block %d): %s", w.Code, w.BlockIndex, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single printable string
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// Result is the output of one layout pass
type Result struct {
	Pages    []Page
	Stats    LayoutStats
	Warnings []Warning
}

// PageCount returns the number of pages in the result
func (r *Result) PageCount() int {
	return len(r.Pages)
}

// FragmentsForBlock returns every fragment produced by the block, paired
// with the 1-based page number it landed on
func (r *Result) FragmentsForBlock(blockID string) []PlacedFragment {
	var out []PlacedFragment
	for pi := range r.Pages {
		for fi := range r.Pages[pi].Fragments {
			f := &r.Pages[pi].Fragments[fi]
			if f.BlockID == blockID {
				out = append(out, PlacedFragment{Page: r.Pages[pi].Number, Fragment: f})
			}
		}
	}
	return out
}

// PlacedFragment pairs a fragment with the page it landed on
type PlacedFragment struct {
	Page     int
	Fragment *Fragment
}
