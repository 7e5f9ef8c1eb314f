package flow

// BlockKind represents the kind of flow block
type BlockKind int

const (
	BlockUnknown BlockKind = iota
	BlockParagraph
	BlockTable
	BlockImage
	BlockDrawing
	BlockSectionBreak
)

func (bk BlockKind) String() string {
	switch bk {
	case BlockParagraph:
		return "Paragraph"
	case BlockTable:
		return "Table"
	case BlockImage:
		return "Image"
	case BlockDrawing:
		return "Drawing"
	case BlockSectionBreak:
		return "SectionBreak"
	default:
		return "Unknown"
	}
}

// FlowBlock is one unit of flowable content. Kind selects which payload
// pointer is set; the other pointers are nil. Start and End are source
// document positions, carried through to the fragments the block produces.
type FlowBlock struct {
	ID    string
	Kind  BlockKind
	Start int
	End   int

	// Anchor is nil for content that participates in the main flow.
	Anchor *Anchor

	Paragraph *ParagraphBlock
	Table     *TableBlock
	Image     *ImageBlock
	Drawing   *DrawingBlock
	Section   *SectionProperties
}

// AnchorRef identifies what an anchored object is positioned against
type AnchorRef int

const (
	AnchorParagraph AnchorRef = iota
	AnchorMargin
	AnchorPage
)

func (ar AnchorRef) String() string {
	switch ar {
	case AnchorMargin:
		return "Margin"
	case AnchorPage:
		return "Page"
	default:
		return "Paragraph"
	}
}

// Anchor describes how a floating object is positioned. Offsets are
// relative to the reference origin: the page corner for page anchors, the
// margin corner for margin anchors, and the owning paragraph's top-left
// for paragraph anchors.
type Anchor struct {
	Anchored   bool
	RelativeTo AnchorRef
	OffsetX    float64
	OffsetY    float64
}

// Token marks a run whose text is substituted during pagination
type Token int

const (
	TokenNone Token = iota
	TokenPageNumber
	TokenTotalPages
	TokenPageReference
)

// TextAlignment represents horizontal paragraph alignment
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// FontWeight represents the weight component of a font signature
type FontWeight int

const (
	WeightRegular FontWeight = iota
	WeightBold
)

// FontStyle represents the slant component of a font signature
type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
)

// FontSig identifies a font face and size. It is comparable and serves as
// the metrics cache key.
type FontSig struct {
	Family string
	Size   float64
	Weight FontWeight
	Style  FontStyle
}

// Run is a span of uniformly styled text within a paragraph
type Run struct {
	Text  string
	Font  FontSig
	Token Token
}

// ParagraphBlock carries the runs and spacing of one paragraph.
// LineSpacing is a multiplier on the font size; zero means the default.
type ParagraphBlock struct {
	Runs            []Run
	SpacingBefore   float64
	SpacingAfter    float64
	LineSpacing     float64
	Indent          float64
	FirstLineIndent float64
	Alignment       TextAlignment
}

// TableCell holds cell content. Span is the column span; values below 1
// are treated as 1.
type TableCell struct {
	Runs []Run
	Span int
}

// TableRow is one row of cells. Header rows repeat nothing during layout;
// the flag is carried for painters.
type TableRow struct {
	Cells  []TableCell
	Header bool
}

// TableBlock carries table content. PreferredWidths, when present, seeds
// column sizing; missing or zero entries share the remaining width.
type TableBlock struct {
	Rows            []TableRow
	PreferredWidths []float64
}

// ImageBlock places raster content by reference. The engine positions it;
// painters resolve Src to pixels. Width and Height are the intrinsic size
// in points, zero when unknown.
type ImageBlock struct {
	Src       string
	Width     float64
	Height    float64
	FullWidth bool
	Indent    float64
	Margins   Margins
}

// DrawingBlock places vector content by reference, with the same
// positioning rules as images
type DrawingBlock struct {
	Src       string
	Width     float64
	Height    float64
	FullWidth bool
	Indent    float64
	Margins   Margins
}

// Anchored pairs an anchored block with its measure for the anchoring pass
type Anchored struct {
	BlockIndex int
	Block      *FlowBlock
	Measure    *Measure
	Width      float64
	Height     float64
}
