package paginate

import "github.com/tsawler/typeset/flow"

// columnBoxes is the resolved column geometry of a section: one X origin
// per column and the shared column width.
type columnBoxes struct {
	xs    []float64
	width float64
}

// computeColumns resolves the section's column settings into concrete
// boxes. When the gaps leave no room for the columns the layout
// collapses to a single full-width column.
func computeColumns(sp flow.SectionProperties) columnBoxes {
	cols := sp.Columns.Normalize()

	content := sp.ContentWidth()
	if content < 0 {
		content = 0
	}

	width := (content - cols.Gap*float64(cols.Count-1)) / float64(cols.Count)
	if width <= 0 && cols.Count > 1 {
		return columnBoxes{xs: []float64{sp.Margins.Left}, width: content}
	}
	if width < 0 {
		width = 0
	}

	xs := make([]float64, cols.Count)
	for i := range xs {
		xs[i] = sp.Margins.Left + float64(i)*(width+cols.Gap)
	}
	return columnBoxes{xs: xs, width: width}
}

func (cb columnBoxes) count() int {
	return len(cb.xs)
}
