package flow

// PageSize represents page dimensions in points
type PageSize struct {
	Width  float64
	Height float64
}

// Standard page sizes.
var (
	A3 = PageSize{842, 1191}
	A4 = PageSize{595, 842}
	A5 = PageSize{420, 595}

	Letter  = PageSize{612, 792}
	Legal   = PageSize{612, 1008}
	Tabloid = PageSize{792, 1224}
)

// Landscape returns the size in landscape orientation
func (p PageSize) Landscape() PageSize {
	if p.Width < p.Height {
		return PageSize{p.Height, p.Width}
	}
	return p
}

// Portrait returns the size in portrait orientation
func (p PageSize) Portrait() PageSize {
	if p.Width > p.Height {
		return PageSize{p.Height, p.Width}
	}
	return p
}

// Margins represents page or object margins in points
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargins creates equal margins on all sides
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}

// Columns describes the column arrangement of a section. A Count below 1
// is treated as a single column.
type Columns struct {
	Count int
	Gap   float64
}

// Normalize returns the column spec with Count clamped to at least 1 and a
// non-negative gap
func (c Columns) Normalize() Columns {
	if c.Count < 1 {
		c.Count = 1
	}
	if c.Gap < 0 {
		c.Gap = 0
	}
	return c
}

// BreakType represents how a section break takes effect
type BreakType int

const (
	// BreakNextPage starts the new section's geometry on a fresh page.
	BreakNextPage BreakType = iota
	// BreakContinuous applies the new geometry without forcing a page break.
	BreakContinuous
)

func (bt BreakType) String() string {
	if bt == BreakContinuous {
		return "Continuous"
	}
	return "NextPage"
}

// SectionProperties carries the page geometry a section break establishes.
// The properties take effect after the break, never retroactively.
type SectionProperties struct {
	PageSize PageSize
	Margins  Margins
	Columns  Columns
	Break    BreakType
}

// ContentWidth returns the usable width between the left and right margins
func (sp SectionProperties) ContentWidth() float64 {
	return sp.PageSize.Width - sp.Margins.Left - sp.Margins.Right
}

// ContentHeight returns the usable height between the top and bottom margins
func (sp SectionProperties) ContentHeight() float64 {
	return sp.PageSize.Height - sp.Margins.Top - sp.Margins.Bottom
}
