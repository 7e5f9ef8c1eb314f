package metrics

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tsawler/typeset/flow"
)

// GoFontFamily is the family name the bundled Go fonts register under.
const GoFontFamily = "Go"

type faceKey struct {
	family string
	weight flow.FontWeight
	style  flow.FontStyle
}

// OpenTypeMeasurer measures text against real OpenType font files. Fonts
// are registered per family, weight, and style; faces are built at 72 DPI
// so advances come back in points.
type OpenTypeMeasurer struct {
	fonts map[faceKey]*opentype.Font
	faces map[flow.FontSig]font.Face
}

// NewOpenTypeMeasurer creates an empty measurer. Register fonts before
// measuring, or use NewGoFontMeasurer for a ready-to-use one.
func NewOpenTypeMeasurer() *OpenTypeMeasurer {
	return &OpenTypeMeasurer{
		fonts: make(map[faceKey]*opentype.Font),
		faces: make(map[flow.FontSig]font.Face),
	}
}

// NewGoFontMeasurer creates a measurer preloaded with the four bundled Go
// faces under the family "Go".
func NewGoFontMeasurer() (*OpenTypeMeasurer, error) {
	m := NewOpenTypeMeasurer()

	preload := []struct {
		weight flow.FontWeight
		style  flow.FontStyle
		data   []byte
	}{
		{flow.WeightRegular, flow.StyleNormal, goregular.TTF},
		{flow.WeightBold, flow.StyleNormal, gobold.TTF},
		{flow.WeightRegular, flow.StyleItalic, goitalic.TTF},
		{flow.WeightBold, flow.StyleItalic, gobolditalic.TTF},
	}
	for _, p := range preload {
		if err := m.RegisterFont(GoFontFamily, p.weight, p.style, p.data); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RegisterFont parses font data and registers it for the family, weight,
// and style. Registering the same combination again replaces the font and
// drops any faces built from it.
func (m *OpenTypeMeasurer) RegisterFont(family string, weight flow.FontWeight, style flow.FontStyle, data []byte) error {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("metrics: parsing font %q: %w", family, err)
	}

	m.fonts[faceKey{family, weight, style}] = fnt
	for sig := range m.faces {
		if sig.Family == family && sig.Weight == weight && sig.Style == style {
			delete(m.faces, sig)
		}
	}
	return nil
}

// Registered reports whether a font is registered for the signature's
// family, weight, and style.
func (m *OpenTypeMeasurer) Registered(sig flow.FontSig) bool {
	_, ok := m.fonts[faceKey{sig.Family, sig.Weight, sig.Style}]
	return ok
}

// MeasureChar returns the advance of r in points. Characters the font has
// no glyph for take half an em. Returns ErrUnknownFont when nothing is
// registered for the signature.
func (m *OpenTypeMeasurer) MeasureChar(sig flow.FontSig, r rune) (float64, error) {
	face, err := m.face(sig)
	if err != nil {
		return 0, err
	}

	adv, ok := face.GlyphAdvance(r)
	if !ok {
		size := sig.Size
		if size <= 0 {
			size = defaultFontSize
		}
		return size * halfEm, nil
	}

	// Convert from 26.6 fixed point; at 72 DPI one pixel is one point.
	return float64(adv) / 64, nil
}

func (m *OpenTypeMeasurer) face(sig flow.FontSig) (font.Face, error) {
	if f, ok := m.faces[sig]; ok {
		return f, nil
	}

	base, ok := m.fonts[faceKey{sig.Family, sig.Weight, sig.Style}]
	if !ok {
		return nil, ErrUnknownFont
	}

	size := sig.Size
	if size <= 0 {
		size = defaultFontSize
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("metrics: building face for %q: %w", sig.Family, err)
	}

	m.faces[sig] = face
	return face, nil
}
