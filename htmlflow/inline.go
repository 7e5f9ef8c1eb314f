package htmlflow

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/tsawler/typeset/flow"
	"github.com/tsawler/typeset/track"
)

// skipElement reports whether the element carries no flowable content
func skipElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template", "svg", "math",
		"iframe", "object", "embed":
		return true
	}
	return false
}

// blockLevel reports whether the element starts a new block, ending any
// inline collection
func blockLevel(tag string) bool {
	switch tag {
	case "p", "div", "ul", "ol", "li", "table", "blockquote", "pre",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"article", "section", "main", "header", "footer", "nav", "aside":
		return true
	}
	return false
}

// pendingImage is an image found during inline collection, held until
// the surrounding paragraph is emitted
type pendingImage struct {
	img   flow.ImageBlock
	marks []track.Mark
}

// inlineRuns collects the styled runs of one block element together
// with the change marks covering each run. Images found inline are
// returned separately and emitted as blocks after the paragraph.
func (w *walker) inlineRuns(n *html.Node, font flow.FontSig) ([]flow.Run, [][]track.Mark, []pendingImage) {
	var b runBuilder
	var pending []pendingImage
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.collectInline(c, font, w.blockMarks, &b, &pending)
	}
	runs, marks := b.finish()
	return runs, marks, pending
}

func (w *walker) collectInline(n *html.Node, font flow.FontSig, marks []track.Mark, b *runBuilder, pending *[]pendingImage) {
	switch n.Type {
	case html.TextNode:
		b.text(n.Data, font, marks)
		return
	case html.ElementNode:
	default:
		return
	}

	if skipElement(n.Data) || blockLevel(n.Data) {
		return
	}

	switch n.Data {
	case "b", "strong":
		font.Weight = flow.WeightBold
	case "i", "em":
		font.Style = flow.StyleItalic
	case "code", "kbd", "samp", "tt":
		font.Family = w.config.MonoFamily
	case "ins":
		marks = pushMark(marks, track.MarkInsertion, citeAttr(n))
	case "del":
		marks = pushMark(marks, track.MarkDeletion, citeAttr(n))
	case "br":
		b.hardBreak(font, marks)
		return
	case "img":
		img := parseImage(n, w.config.PixelScale)
		if img.Src != "" {
			*pending = append(*pending, pendingImage{img: img, marks: marks})
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.collectInline(c, font, marks, b, pending)
	}
}

// pushMark copies the mark stack before appending so sibling branches
// never share a backing array
func pushMark(marks []track.Mark, kind track.MarkKind, author string) []track.Mark {
	out := make([]track.Mark, len(marks), len(marks)+1)
	copy(out, marks)
	return append(out, track.Mark{Kind: kind, Author: author})
}

// citeAttr returns the element's cite attribute, the attribution an ins
// or del element carries
func citeAttr(n *html.Node) string {
	for _, attr := range n.Attr {
		if attr.Key == "cite" {
			return attr.Val
		}
	}
	return ""
}

func markEqual(a, b []track.Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// parseImage reads an img element's attributes, converting pixel sizes
// to points
func parseImage(n *html.Node, pixelScale float64) flow.ImageBlock {
	img := flow.ImageBlock{}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "src":
			img.Src = attr.Val
		case "width":
			if v, err := strconv.ParseFloat(attr.Val, 64); err == nil && v > 0 {
				img.Width = v * pixelScale
			}
		case "height":
			if v, err := strconv.ParseFloat(attr.Val, 64); err == nil && v > 0 {
				img.Height = v * pixelScale
			}
		}
	}
	return img
}

// runBuilder accumulates styled runs, collapsing whitespace the way
// rendered HTML does and merging adjacent text with the same style and
// marks. The marks slice stays parallel to runs.
type runBuilder struct {
	runs  []flow.Run
	marks [][]track.Mark
}

// text appends text content with whitespace runs collapsed to single
// spaces
func (b *runBuilder) text(s string, font flow.FontSig, marks []track.Mark) {
	b.append(collapseSpace(s), font, marks)
}

// hardBreak appends a newline, which line breaking turns into a forced
// break
func (b *runBuilder) hardBreak(font flow.FontSig, marks []track.Mark) {
	b.append("\n", font, marks)
}

func (b *runBuilder) append(s string, font flow.FontSig, marks []track.Mark) {
	if s == "" {
		return
	}
	if len(b.runs) > 0 {
		last := &b.runs[len(b.runs)-1]
		if strings.HasSuffix(last.Text, " ") && strings.HasPrefix(s, " ") {
			s = s[1:]
			if s == "" {
				return
			}
		}
		if last.Font == font && last.Token == flow.TokenNone && markEqual(b.marks[len(b.marks)-1], marks) {
			last.Text += s
			return
		}
	}
	b.runs = append(b.runs, flow.Run{Text: s, Font: font})
	b.marks = append(b.marks, marks)
}

// finish trims the paragraph edges and drops runs that emptied out
func (b *runBuilder) finish() ([]flow.Run, [][]track.Mark) {
	runs, marks := b.runs, b.marks
	for len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " ")
		if runs[0].Text != "" {
			break
		}
		runs, marks = runs[1:], marks[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " ")
		if runs[last].Text != "" {
			break
		}
		runs, marks = runs[:last], marks[:last]
	}
	return runs, marks
}

// collapseSpace replaces each whitespace run with a single space,
// keeping the leading and trailing boundaries so adjacent runs stay
// separated
func collapseSpace(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

// rawText concatenates the text nodes under n verbatim, skipping
// non-content elements
func rawText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && skipElement(n.Data) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
