package track

import "testing"

func text(s string, marks ...Mark) *Node {
	return &Node{Text: s, Marks: marks}
}

func element(marks []Mark, children ...*Node) *Node {
	return &Node{Marks: marks, Children: children}
}

// ============================================================================
// Extraction Tests
// ============================================================================

func TestNodeSize(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want int
	}{
		{"text node", text("hello"), 5},
		{"multibyte text counts runes", text("héllo"), 5},
		{"empty element", element(nil), 2},
		{"element with text", element(nil, text("hello")), 7},
		{"nested elements", element(nil, element(nil, text("ab"))), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractSpans(t *testing.T) {
	// Two paragraphs; the second has "wor" marked deleted.
	root := element(nil,
		element(nil, text("hello")),
		element(nil,
			text("wor", Mark{Kind: MarkDeletion, Author: "ann"}),
			text("ld"),
		),
	)

	spans := ExtractSpans(root)
	if len(spans) != 1 {
		t.Fatalf("ExtractSpans() = %d spans, want 1", len(spans))
	}

	want := Span{Start: 8, End: 11, Type: SpanDeletion, Author: "ann"}
	if spans[0] != want {
		t.Errorf("span = %+v, want %+v", spans[0], want)
	}
}

func TestExtractSpansElementMark(t *testing.T) {
	// A whole paragraph marked inserted covers its open and close
	// positions too.
	root := element(nil,
		element([]Mark{{Kind: MarkInsertion, Author: "bob"}}, text("hi")),
		element(nil, text("after")),
	)

	spans := ExtractSpans(root)
	if len(spans) != 1 {
		t.Fatalf("ExtractSpans() = %d spans, want 1", len(spans))
	}

	want := Span{Start: 0, End: 4, Type: SpanInsertion, Author: "bob"}
	if spans[0] != want {
		t.Errorf("span = %+v, want %+v", spans[0], want)
	}
}

func TestExtractSpansIgnoresOtherMarks(t *testing.T) {
	root := element(nil,
		element(nil, text("bold", Mark{Kind: MarkOther})),
	)

	if spans := ExtractSpans(root); len(spans) != 0 {
		t.Errorf("ExtractSpans() = %v, want none for formatting marks", spans)
	}

	if spans := ExtractSpans(nil); len(spans) != 0 {
		t.Errorf("ExtractSpans(nil) = %v, want none", spans)
	}
}

func TestExtractSpansNested(t *testing.T) {
	// A deleted text inside an inserted paragraph yields both spans.
	root := element(nil,
		element([]Mark{{Kind: MarkInsertion, Author: "bob"}},
			text("ab"),
			text("cd", Mark{Kind: MarkDeletion, Author: "ann"}),
		),
	)

	spans := ExtractSpans(root)
	if len(spans) != 2 {
		t.Fatalf("ExtractSpans() = %d spans, want 2", len(spans))
	}
	if spans[0] != (Span{Start: 0, End: 6, Type: SpanInsertion, Author: "bob"}) {
		t.Errorf("outer span = %+v", spans[0])
	}
	if spans[1] != (Span{Start: 3, End: 5, Type: SpanDeletion, Author: "ann"}) {
		t.Errorf("inner span = %+v", spans[1])
	}
}

// ============================================================================
// Position Mapping Tests
// ============================================================================

func TestVisualPosition(t *testing.T) {
	del := []Span{{Start: 5, End: 10, Type: SpanDeletion}}

	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"before deletion", 3, 3},
		{"at deletion start", 5, 5},
		{"inside clamps to start", 7, 5},
		{"at deletion end", 10, 5},
		{"after deletion", 15, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisualPosition(tt.pos, del); got != tt.want {
				t.Errorf("VisualPosition(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestVisualPositionMultipleDeletions(t *testing.T) {
	spans := []Span{
		{Start: 2, End: 4, Type: SpanDeletion},
		{Start: 8, End: 11, Type: SpanDeletion},
		{Start: 5, End: 6, Type: SpanInsertion}, // insertions never shift
	}

	if got := VisualPosition(12, spans); got != 7 {
		t.Errorf("VisualPosition(12) = %d, want 7", got)
	}
	if got := VisualPosition(9, spans); got != 6 {
		t.Errorf("VisualPosition(9) = %d, want 6 (2 from first, 1 inside second)", got)
	}
}

func TestVisualPositionNeverNegative(t *testing.T) {
	spans := []Span{{Start: 0, End: 9, Type: SpanDeletion}}
	if got := VisualPosition(4, spans); got != 0 {
		t.Errorf("VisualPosition(4) = %d, want 0", got)
	}

	// Overlapping spans can oversubtract; the floor holds at zero.
	overlapping := []Span{
		{Start: 0, End: 5, Type: SpanDeletion},
		{Start: 0, End: 5, Type: SpanDeletion},
	}
	if got := VisualPosition(3, overlapping); got != 0 {
		t.Errorf("VisualPosition(3) with overlapping deletions = %d, want 0", got)
	}
}

func TestCursorAdjustment(t *testing.T) {
	spans := []Span{
		{Start: 2, End: 4, Type: SpanDeletion},
		{Start: 8, End: 11, Type: SpanDeletion},
	}

	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"before everything", 1, 0},
		{"after first", 6, -2},
		{"inside second counts nothing for it", 9, -2},
		{"after both", 12, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CursorAdjustment(tt.pos, spans); got != tt.want {
				t.Errorf("CursorAdjustment(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestInDeletion(t *testing.T) {
	spans := []Span{
		{Start: 5, End: 10, Type: SpanDeletion},
		{Start: 0, End: 3, Type: SpanInsertion},
	}

	tests := []struct {
		name string
		pos  int
		want bool
	}{
		{"inside", 7, true},
		{"at start is inside", 5, true},
		{"at end is outside", 10, false},
		{"before", 4, false},
		{"inside insertion only", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InDeletion(tt.pos, spans); got != tt.want {
				t.Errorf("InDeletion(%d) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestDeletionsInRange(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 3, Type: SpanDeletion},
		{Start: 5, End: 10, Type: SpanDeletion},
		{Start: 12, End: 14, Type: SpanInsertion},
		{Start: 20, End: 25, Type: SpanDeletion},
	}

	got := DeletionsInRange(2, 21, spans)
	if len(got) != 3 {
		t.Fatalf("DeletionsInRange(2, 21) = %d spans, want 3", len(got))
	}

	// Touching endpoints do not overlap a half-open range.
	got = DeletionsInRange(3, 5, spans)
	if len(got) != 0 {
		t.Errorf("DeletionsInRange(3, 5) = %v, want none", got)
	}

	got = DeletionsInRange(9, 20, spans)
	if len(got) != 1 || got[0].Start != 5 {
		t.Errorf("DeletionsInRange(9, 20) = %v, want the [5,10) span", got)
	}
}
