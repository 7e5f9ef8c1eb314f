package metrics

import (
	"errors"

	"golang.org/x/text/width"

	"github.com/tsawler/typeset/flow"
)

// ErrUnknownFont is returned when a measurer has no data for the
// requested font signature.
var ErrUnknownFont = errors.New("metrics: font not registered")

// defaultFontSize is used when a signature carries no usable size.
const defaultFontSize = 12.0

// halfEm is the fallback width ratio for characters with no metrics.
const halfEm = 0.5

// CharMeasurer measures the horizontal advance of a single character, in
// points at the signature's size.
type CharMeasurer interface {
	MeasureChar(sig flow.FontSig, r rune) (float64, error)
}

// StandardMeasurer measures text against the built-in Type 1 width
// tables. It needs no font files, covers Latin text exactly and wide
// scripts approximately, and never fails. The zero value is ready to use.
type StandardMeasurer struct{}

// NewStandardMeasurer creates a standard measurer
func NewStandardMeasurer() *StandardMeasurer {
	return &StandardMeasurer{}
}

// MeasureChar returns the advance of r in points. East Asian wide and
// fullwidth characters take a full em; characters missing from the width
// table take half an em.
func (m *StandardMeasurer) MeasureChar(sig flow.FontSig, r rune) (float64, error) {
	size := sig.Size
	if size <= 0 {
		size = defaultFontSize
	}

	if w, ok := familyWidths(sig)[r]; ok {
		return w / 1000 * size, nil
	}

	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return size, nil
	}

	return size * halfEm, nil
}
