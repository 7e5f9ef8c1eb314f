package paginate

import (
	"fmt"

	"github.com/tsawler/typeset/flow"
	"github.com/tsawler/typeset/metrics"
)

// positionTolerance absorbs float drift when comparing cursor positions
// against column boundaries
const positionTolerance = 0.001

// Config holds pagination parameters
type Config struct {
	// Section is the page geometry in effect before any section break.
	// Default: Letter, one-inch margins, a single column.
	Section flow.SectionProperties

	// Lines, when set, supplies line boxes for paragraphs whose measure
	// carries none, keyed by block index.
	// Default: nil (no fallback).
	Lines *metrics.ParagraphLineCache
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Section: flow.SectionProperties{
			PageSize: flow.Letter,
			Margins:  flow.UniformMargins(72.0),
			Columns:  flow.Columns{Count: 1},
		},
	}
}

// Paginator arranges measured flow blocks onto pages
type Paginator struct {
	config Config
}

// New creates a paginator with default configuration
func New() *Paginator {
	return &Paginator{config: DefaultConfig()}
}

// NewWithConfig creates a paginator with custom configuration. A zero
// page size falls back to the default.
func NewWithConfig(config Config) *Paginator {
	if config.Section.PageSize.Width <= 0 || config.Section.PageSize.Height <= 0 {
		config.Section.PageSize = flow.Letter
	}
	config.Section.Columns = config.Section.Columns.Normalize()
	return &Paginator{config: config}
}

// Layout arranges blocks onto pages and returns the positioned result.
// Blocks and measures are parallel slices; when their lengths differ the
// excess is ignored with a warning. Inputs are never mutated and every
// call builds a fresh result.
func (pg *Paginator) Layout(blocks []flow.FlowBlock, measures []flow.Measure) *flow.Result {
	result := &flow.Result{}

	n := len(blocks)
	if len(measures) != n {
		if len(measures) < n {
			n = len(measures)
		}
		result.Warnings = append(result.Warnings, flow.Warning{
			Code:       flow.WarnTruncatedInput,
			Message:    fmt.Sprintf("%d blocks, %d measures", len(blocks), len(measures)),
			BlockIndex: -1,
		})
	}
	blocks = blocks[:n]
	measures = measures[:n]

	anchors := collectAnchors(blocks, measures)
	for _, bi := range anchors.Dropped {
		result.Warnings = append(result.Warnings, flow.Warning{
			Code:       flow.WarnUnanchored,
			Message:    "no paragraph to anchor to",
			BlockIndex: bi,
		})
	}

	changes := sectionChanges(blocks)

	st := newPageState(pg.config.Section, result)
	st.lines = pg.config.Lines
	st.pageAnchors = anchors.Page

	for i := range blocks {
		blk := &blocks[i]
		if blk.Anchor != nil && blk.Anchor.Anchored && anchorable(blk.Kind) {
			continue
		}
		switch blk.Kind {
		case flow.BlockSectionBreak:
			st.applySectionBreak(changes[i])
		case flow.BlockParagraph:
			at := st.layoutParagraph(i, blk, &measures[i])
			for _, a := range anchors.Drawings[i] {
				st.placeAnchored(a, at)
			}
			for _, a := range anchors.Tables[i] {
				st.placeAnchored(a, at)
			}
		case flow.BlockTable:
			st.layoutTable(i, blk, &measures[i])
		case flow.BlockImage:
			spec := boxSpec{kind: flow.FragmentImage}
			if blk.Image != nil {
				spec.src = blk.Image.Src
				spec.fullWidth = blk.Image.FullWidth
				spec.indent = blk.Image.Indent
				spec.margins = blk.Image.Margins
			}
			st.layoutBox(i, blk, spec, &measures[i])
		case flow.BlockDrawing:
			spec := boxSpec{kind: flow.FragmentDrawing}
			if blk.Drawing != nil {
				spec.src = blk.Drawing.Src
				spec.fullWidth = blk.Drawing.FullWidth
				spec.indent = blk.Drawing.Indent
				spec.margins = blk.Drawing.Margins
			}
			st.layoutBox(i, blk, spec, &measures[i])
		}
	}

	// A document holding nothing but page-anchored objects still renders
	// one page for them to land on.
	if len(st.pages) == 0 && st.page == nil && len(st.pageAnchors) > 0 {
		st.ensurePage()
	}

	st.finish(len(blocks))
	return result
}

// anchorable reports whether the block kind can leave the main flow when
// anchored. Paragraphs and section breaks always flow.
func anchorable(kind flow.BlockKind) bool {
	switch kind {
	case flow.BlockImage, flow.BlockDrawing, flow.BlockTable:
		return true
	}
	return false
}

// sectionChanges maps each section break's block index to a private copy
// of its properties, leaving the input untouched
func sectionChanges(blocks []flow.FlowBlock) map[int]*flow.SectionProperties {
	var changes map[int]*flow.SectionProperties
	for i := range blocks {
		if blocks[i].Kind != flow.BlockSectionBreak || blocks[i].Section == nil {
			continue
		}
		if changes == nil {
			changes = make(map[int]*flow.SectionProperties)
		}
		p := *blocks[i].Section
		p.Columns = p.Columns.Normalize()
		changes[i] = &p
	}
	return changes
}

// pageState is the cursor the paginator walks with: the page being
// filled, the live section geometry, and the current column band.
type pageState struct {
	result *flow.Result
	lines  *metrics.ParagraphLineCache

	section flow.SectionProperties
	next    *flow.SectionProperties

	pages  []*flow.Page
	page   *flow.Page
	cols   columnBoxes
	column int

	// cursorY is the next free Y in the current column. bandTop is where
	// the current column band starts; advancing a column returns there.
	cursorY float64
	bandTop float64

	pageAnchors   []flow.Anchored
	anchorsPlaced int
	fragments     int
}

func newPageState(section flow.SectionProperties, result *flow.Result) *pageState {
	section.Columns = section.Columns.Normalize()
	return &pageState{result: result, section: section}
}

// ensurePage makes sure a page is open, creating one lazily so trailing
// section breaks produce no empty page. Pending section geometry takes
// effect here. Page- and margin-relative anchors land on the first page.
func (st *pageState) ensurePage() {
	if st.page != nil {
		return
	}
	if st.next != nil {
		st.section = *st.next
		st.next = nil
	}
	st.cols = computeColumns(st.section)
	st.column = 0
	st.cursorY = st.section.Margins.Top
	st.bandTop = st.cursorY
	st.page = &flow.Page{
		Number:  len(st.pages) + 1,
		Size:    st.section.PageSize,
		Margins: st.section.Margins,
		Columns: st.section.Columns.Normalize(),
	}
	if st.page.Number == 1 {
		st.placePageAnchors()
	}
}

func (st *pageState) finishPage() {
	if st.page == nil {
		return
	}
	st.pages = append(st.pages, st.page)
	st.page = nil
}

// advanceColumn moves the cursor to the top of the next column, starting
// a new page when the current one is out of columns
func (st *pageState) advanceColumn() {
	st.column++
	if st.column < st.cols.count() {
		st.cursorY = st.bandTop
		return
	}
	st.finishPage()
	st.ensurePage()
}

// applySectionBreak records the geometry a section break establishes. A
// next-page break closes the current page; a continuous break restarts
// the column band at the cursor and defers the full geometry to the next
// page. A zero page size inherits the current one.
func (st *pageState) applySectionBreak(props *flow.SectionProperties) {
	if props == nil {
		return
	}
	p := *props
	p.Columns = p.Columns.Normalize()
	if p.PageSize.Width <= 0 || p.PageSize.Height <= 0 {
		p.PageSize = st.section.PageSize
	}

	if p.Break == flow.BreakContinuous && st.page != nil {
		st.section.Columns = p.Columns
		st.cols = computeColumns(st.section)
		st.column = 0
		st.bandTop = st.cursorY
		st.next = &p
		return
	}

	st.next = &p
	if p.Break == flow.BreakNextPage {
		st.finishPage()
	}
}

func (st *pageState) columnX() float64 {
	return st.cols.xs[st.column]
}

func (st *pageState) contentBottom() float64 {
	return st.section.PageSize.Height - st.section.Margins.Bottom
}

// fits reports whether a block of the given height fits between the
// cursor and the bottom margin
func (st *pageState) fits(height float64) bool {
	return st.cursorY+height <= st.contentBottom()+positionTolerance
}

// atBandTop reports whether the cursor sits at the top of the current
// column band, where advancing further would gain no room
func (st *pageState) atBandTop() bool {
	return st.cursorY <= st.bandTop+positionTolerance
}

func (st *pageState) addFragment(f flow.Fragment) {
	st.page.AddFragment(f)
	st.fragments++
}

func (st *pageState) warn(code flow.WarningCode, blockIndex int, message string) {
	st.result.Warnings = append(st.result.Warnings, flow.Warning{
		Code:       code,
		Message:    message,
		BlockIndex: blockIndex,
	})
}

// finish closes the open page and fills in the result
func (st *pageState) finish(blockCount int) {
	st.finishPage()
	st.result.Pages = make([]flow.Page, len(st.pages))
	for i, p := range st.pages {
		st.result.Pages[i] = *p
	}
	st.result.Stats = flow.LayoutStats{
		BlockCount:    blockCount,
		PageCount:     len(st.pages),
		FragmentCount: st.fragments,
		AnchorCount:   st.anchorsPlaced,
	}
}
