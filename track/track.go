package track

import "unicode/utf8"

// SpanType represents the kind of tracked change
type SpanType int

const (
	SpanInsertion SpanType = iota
	SpanDeletion
)

func (st SpanType) String() string {
	if st == SpanDeletion {
		return "Deletion"
	}
	return "Insertion"
}

// Span is one tracked change as a half-open [Start, End) position range
type Span struct {
	Start  int
	End    int
	Type   SpanType
	Author string
}

// Length returns the number of positions the span covers
func (s Span) Length() int {
	return s.End - s.Start
}

// MarkKind classifies a node mark. Kinds other than insertion and
// deletion are carried but ignored by extraction.
type MarkKind int

const (
	MarkOther MarkKind = iota
	MarkInsertion
	MarkDeletion
)

// Mark is one mark on a node
type Mark struct {
	Kind   MarkKind
	Author string
}

// Node is a document tree node. Text nodes carry Text and no children;
// element nodes carry children and no text.
type Node struct {
	Text     string
	Marks    []Mark
	Children []*Node
}

// IsText reports whether the node is a text node
func (n *Node) IsText() bool {
	return n.Text != ""
}

// Size returns the number of positions the node occupies: the character
// count for text nodes, the children's total plus the two surrounding
// positions for elements.
func (n *Node) Size() int {
	if n.IsText() {
		return utf8.RuneCountInString(n.Text)
	}
	size := 2
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// ExtractSpans walks the tree and collects a span for every node bearing
// an insertion or deletion mark. The root itself contributes no positions
// and its marks are ignored; its children start at position 0.
func ExtractSpans(root *Node) []Span {
	var spans []Span
	if root == nil {
		return spans
	}

	pos := 0
	for _, child := range root.Children {
		extractNode(child, pos, &spans)
		pos += child.Size()
	}
	return spans
}

func extractNode(n *Node, pos int, spans *[]Span) {
	for _, m := range n.Marks {
		switch m.Kind {
		case MarkInsertion:
			*spans = append(*spans, Span{Start: pos, End: pos + n.Size(), Type: SpanInsertion, Author: m.Author})
		case MarkDeletion:
			*spans = append(*spans, Span{Start: pos, End: pos + n.Size(), Type: SpanDeletion, Author: m.Author})
		}
	}

	if n.IsText() {
		return
	}
	childPos := pos + 1
	for _, c := range n.Children {
		extractNode(c, childPos, spans)
		childPos += c.Size()
	}
}

// VisualPosition maps a document position into the visual space where
// deletions are collapsed. Positions past a deletion shift left by its
// length; positions inside one land at the deletion's start. The result
// never drops below zero and never exceeds pos. Insertions have no
// effect.
func VisualPosition(pos int, spans []Span) int {
	visual := pos
	for _, s := range spans {
		if s.Type != SpanDeletion {
			continue
		}
		if pos >= s.End {
			visual -= s.Length()
		} else if pos > s.Start && pos < s.End {
			visual -= pos - s.Start
		}
	}
	if visual < 0 {
		visual = 0
	}
	return visual
}

// CursorAdjustment returns the cumulative shift deletions before pos
// apply to it: zero or negative, counting only deletions that end at or
// before pos. Unlike VisualPosition it applies no clamping for positions
// inside a deletion.
func CursorAdjustment(pos int, spans []Span) int {
	adj := 0
	for _, s := range spans {
		if s.Type == SpanDeletion && pos >= s.End {
			adj -= s.Length()
		}
	}
	return adj
}

// InDeletion reports whether the position falls inside any deletion span,
// treating spans as half-open ranges
func InDeletion(pos int, spans []Span) bool {
	for _, s := range spans {
		if s.Type == SpanDeletion && pos >= s.Start && pos < s.End {
			return true
		}
	}
	return false
}

// DeletionsInRange returns the deletion spans overlapping the half-open
// range [start, end), in their order in spans
func DeletionsInRange(start, end int, spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.Type == SpanDeletion && s.Start < end && s.End > start {
			out = append(out, s)
		}
	}
	return out
}
