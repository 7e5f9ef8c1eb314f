package htmlflow

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/typeset/flow"
	"github.com/tsawler/typeset/track"
)

// headingScale maps heading levels 1 through 6 to multiples of the base
// font size, following the browser defaults
var headingScale = [6]float64{2.0, 1.5, 1.17, 1.0, 0.83, 0.67}

// Config holds conversion parameters
type Config struct {
	// BaseFont styles body text.
	// Default: Helvetica 12.
	BaseFont flow.FontSig

	// MonoFamily styles pre, code, and kbd content.
	// Default: Courier.
	MonoFamily string

	// ListIndent is the indent added per list nesting level, in points.
	// Default: 18.
	ListIndent float64

	// ParagraphSpacing is the spacing after body paragraphs, in points.
	// Headings get twice this before them.
	// Default: 6.
	ParagraphSpacing float64

	// PixelScale converts img width and height attributes (CSS pixels)
	// to points.
	// Default: 0.75 (96 DPI pixels at 72 points per inch).
	PixelScale float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		BaseFont:         flow.FontSig{Family: "Helvetica", Size: 12},
		MonoFamily:       "Courier",
		ListIndent:       18,
		ParagraphSpacing: 6,
		PixelScale:       0.75,
	}
}

// Document is the converted form of one HTML document
type Document struct {
	Title    string
	Metadata map[string]string
	Blocks   []flow.FlowBlock

	// Changes lists the tracked changes found in ins and del elements,
	// in document order, with positions in the same space as the block
	// Start and End ranges.
	Changes []track.Span
}

// Converter turns HTML markup into flow blocks
type Converter struct {
	config Config
}

// New creates a converter with default configuration
func New() *Converter {
	return &Converter{config: DefaultConfig()}
}

// NewWithConfig creates a converter with custom configuration. Zero
// values that would break the conversion fall back to the defaults.
func NewWithConfig(config Config) *Converter {
	defaults := DefaultConfig()
	if config.BaseFont.Family == "" {
		config.BaseFont.Family = defaults.BaseFont.Family
	}
	if config.BaseFont.Size <= 0 {
		config.BaseFont.Size = defaults.BaseFont.Size
	}
	if config.MonoFamily == "" {
		config.MonoFamily = defaults.MonoFamily
	}
	if config.PixelScale <= 0 {
		config.PixelScale = defaults.PixelScale
	}
	return &Converter{config: config}
}

// Parse converts HTML from r using the default configuration
func Parse(r io.Reader) (*Document, error) {
	return New().Parse(r)
}

// ParseString converts an HTML string using the default configuration
func ParseString(s string) (*Document, error) {
	return New().ParseString(s)
}

// Parse converts HTML from r into a block list
func (c *Converter) Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := &Document{Metadata: make(map[string]string)}
	extractHead(root, doc)

	body := findElement(root, "body")
	if body == nil {
		body = root
	}

	w := &walker{config: c.config, doc: doc, tree: &track.Node{}}
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child)
	}
	doc.Changes = track.ExtractSpans(w.tree)
	return doc, nil
}

// ParseString converts an HTML string into a block list
func (c *Converter) ParseString(s string) (*Document, error) {
	return c.Parse(strings.NewReader(s))
}

// walker flattens body content into blocks, tracking document positions
// and list nesting. It mirrors each emitted block as a node in tree so
// change spans come out in block position space.
type walker struct {
	config     Config
	doc        *Document
	pos        int
	ordinal    int
	lists      []listFrame
	tree       *track.Node
	blockMarks []track.Mark
}

// listFrame tracks one open list: its marker style and item count
type listFrame struct {
	ordered bool
	n       int
}

func (w *walker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if skipElement(n.Data) {
			return
		}
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.heading(n, int(n.Data[1]-'0'))
			return
		case "p":
			w.paragraph(n, w.config.BaseFont, 0)
			return
		case "blockquote":
			w.paragraph(n, w.config.BaseFont, w.config.ListIndent)
			return
		case "pre":
			w.preformatted(n)
			return
		case "ul", "ol":
			w.list(n, n.Data == "ol")
			return
		case "li":
			// A stray item outside any list flows as a plain paragraph.
			w.paragraph(n, w.config.BaseFont, 0)
			return
		case "table":
			w.table(n)
			return
		case "ins", "del":
			// A block-level change wrapper carries its mark down to
			// every block inside it.
			kind := track.MarkInsertion
			if n.Data == "del" {
				kind = track.MarkDeletion
			}
			saved := w.blockMarks
			w.blockMarks = pushMark(w.blockMarks, kind, citeAttr(n))
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				w.walk(child)
			}
			w.blockMarks = saved
			return
		case "img":
			img := parseImage(n, w.config.PixelScale)
			if img.Src != "" {
				w.emitImages([]pendingImage{{img: img, marks: w.blockMarks}})
			}
			return
		case "br", "hr":
			return
		case "div":
			if !hasBlockChildren(n) {
				w.paragraph(n, w.config.BaseFont, 0)
				return
			}
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child)
	}
}

func (w *walker) heading(n *html.Node, level int) {
	font := w.config.BaseFont
	font.Size = w.config.BaseFont.Size * headingScale[level-1]
	font.Weight = flow.WeightBold

	runs, marks, pending := w.inlineRuns(n, font)
	if len(runs) > 0 {
		w.emitParagraph(&flow.ParagraphBlock{
			Runs:          runs,
			SpacingBefore: w.config.ParagraphSpacing * 2,
			SpacingAfter:  w.config.ParagraphSpacing,
		}, marks)
	}
	w.emitImages(pending)
}

func (w *walker) paragraph(n *html.Node, font flow.FontSig, indent float64) {
	runs, marks, pending := w.inlineRuns(n, font)
	if len(runs) > 0 {
		w.emitParagraph(&flow.ParagraphBlock{
			Runs:         runs,
			Indent:       indent,
			SpacingAfter: w.config.ParagraphSpacing,
		}, marks)
	}
	w.emitImages(pending)
}

// preformatted keeps the text of a pre block verbatim so hard line
// breaks survive into layout
func (w *walker) preformatted(n *html.Node) {
	text := strings.Trim(rawText(n), "\n")
	if text == "" {
		return
	}
	font := w.config.BaseFont
	font.Family = w.config.MonoFamily
	w.emitParagraph(&flow.ParagraphBlock{
		Runs:         []flow.Run{{Text: text, Font: font}},
		SpacingAfter: w.config.ParagraphSpacing,
	}, [][]track.Mark{w.blockMarks})
}

func (w *walker) list(n *html.Node, ordered bool) {
	w.lists = append(w.lists, listFrame{ordered: ordered})
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			w.listItem(c)
		}
	}
	w.lists = w.lists[:len(w.lists)-1]
}

// listItem emits one item as an indented paragraph with its marker,
// then flattens any nested lists after it
func (w *walker) listItem(li *html.Node) {
	frame := &w.lists[len(w.lists)-1]
	frame.n++

	marker := "• "
	if frame.ordered {
		marker = fmt.Sprintf("%d. ", frame.n)
	}

	runs, marks, pending := w.inlineRuns(li, w.config.BaseFont)
	if len(runs) > 0 {
		runs = append([]flow.Run{{Text: marker, Font: w.config.BaseFont}}, runs...)
		marks = append([][]track.Mark{w.blockMarks}, marks...)
		w.emitParagraph(&flow.ParagraphBlock{
			Runs:         runs,
			Indent:       float64(len(w.lists)) * w.config.ListIndent,
			SpacingAfter: w.config.ParagraphSpacing / 2,
		}, marks)
	}
	w.emitImages(pending)

	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			w.list(c, c.Data == "ol")
		}
	}
}

// emit appends the block and its tree node. The node is the single
// source of position arithmetic: elements cost 2, text costs its rune
// count, and marks cost nothing.
func (w *walker) emit(blk flow.FlowBlock, node *track.Node) {
	blk.Start = w.pos
	blk.End = w.pos + node.Size()
	w.pos = blk.End
	w.doc.Blocks = append(w.doc.Blocks, blk)
	w.tree.Children = append(w.tree.Children, node)
}

func (w *walker) emitParagraph(p *flow.ParagraphBlock, marks [][]track.Mark) {
	w.ordinal++
	w.emit(flow.FlowBlock{
		ID:        fmt.Sprintf("p-%d", w.ordinal),
		Kind:      flow.BlockParagraph,
		Paragraph: p,
	}, &track.Node{Children: textNodes(p.Runs, marks)})
}

func (w *walker) emitImages(images []pendingImage) {
	for i := range images {
		img := images[i].img
		w.ordinal++
		w.emit(flow.FlowBlock{
			ID:    fmt.Sprintf("img-%d", w.ordinal),
			Kind:  flow.BlockImage,
			Image: &img,
		}, &track.Node{Marks: images[i].marks})
	}
}

// textNodes mirrors a run list as tree text nodes carrying the marks
// collected for each run
func textNodes(runs []flow.Run, marks [][]track.Mark) []*track.Node {
	nodes := make([]*track.Node, len(runs))
	for i, r := range runs {
		var m []track.Mark
		if i < len(marks) {
			m = marks[i]
		}
		nodes[i] = &track.Node{Text: r.Text, Marks: m}
	}
	return nodes
}

// extractHead pulls the title and meta tags out of the head element
func extractHead(n *html.Node, doc *Document) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				doc.Title = strings.TrimSpace(collapseSpace(rawText(c)))
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if name != "" && content != "" {
					doc.Metadata[name] = content
				}
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractHead(c, doc)
	}
}

// findElement finds the first element with the given tag name
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// hasBlockChildren reports whether the element directly contains
// block-level children, in which case it is traversed as a container
// rather than flattened into a paragraph
func hasBlockChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockLevel(c.Data) {
			return true
		}
	}
	return false
}
