package metrics

import (
	"unicode"

	"github.com/tsawler/typeset/flow"
)

// BreakerConfig holds line breaking parameters
type BreakerConfig struct {
	// DefaultLineSpacing multiplies the font size to get line height when
	// the paragraph specifies no spacing.
	DefaultLineSpacing float64

	// AscentRatio places the baseline as a fraction of the font size.
	AscentRatio float64
}

// DefaultBreakerConfig returns the default breaking parameters
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		DefaultLineSpacing: 1.15,
		AscentRatio:        0.8,
	}
}

// LineBreaker breaks paragraphs into line boxes using a greedy first-fit
// strategy: words fill the line until one no longer fits. Words wider than
// the line break at character granularity, so breaking always terminates.
type LineBreaker struct {
	cache  *FontMetricsCache
	config BreakerConfig
}

// NewLineBreaker creates a line breaker with default configuration
func NewLineBreaker(cache *FontMetricsCache) *LineBreaker {
	return NewLineBreakerWithConfig(cache, DefaultBreakerConfig())
}

// NewLineBreakerWithConfig creates a line breaker with custom configuration
func NewLineBreakerWithConfig(cache *FontMetricsCache, config BreakerConfig) *LineBreaker {
	if config.DefaultLineSpacing <= 0 {
		config.DefaultLineSpacing = 1.15
	}
	if config.AscentRatio <= 0 {
		config.AscentRatio = 0.8
	}
	return &LineBreaker{cache: cache, config: config}
}

// segment is a maximal run of word or space characters from one source run
type segment struct {
	runIndex int
	text     []rune
	width    float64
	space    bool
	hard     bool
	token    flow.Token
}

// Break splits the paragraph into line boxes for the given available
// width. The width excludes paragraph-level indentation; the first line is
// additionally narrowed by the paragraph's first-line indent. pos is the
// document position of the paragraph's first character and every rune of
// the source text advances it by one. An empty paragraph still produces
// one empty line.
func (b *LineBreaker) Break(p *flow.ParagraphBlock, width float64, pos int) []flow.LineBox {
	segs := b.segments(p)

	spacing := p.LineSpacing
	if spacing <= 0 {
		spacing = b.config.DefaultLineSpacing
	}

	if len(segs) == 0 {
		size := b.paragraphSize(p)
		return []flow.LineBox{{
			Height: size * spacing,
			Ascent: size * b.config.AscentRatio,
			Start:  pos,
			End:    pos,
		}}
	}

	avail := width - p.FirstLineIndent
	if avail <= 0 {
		avail = width
	}

	var lines []flow.LineBox
	cur := newLineBuilder(pos)

	closeLine := func() {
		lines = append(lines, cur.build(p, spacing, b.config.AscentRatio, b.config.DefaultLineSpacing))
		cur = newLineBuilder(cur.pos)
		avail = width
	}

	for _, seg := range segs {
		switch {
		case seg.hard:
			// The break character closes the line and joins its range.
			cur.pos += len(seg.text)
			closeLine()

		case seg.space:
			if cur.empty() {
				// Leading spaces vanish at a line start.
				cur.skip(len(seg.text))
				continue
			}
			// Trailing spaces may dangle past the edge.
			cur.add(seg)

		default:
			if cur.width+seg.width <= avail {
				cur.add(seg)
				continue
			}
			if !cur.empty() {
				closeLine()
			}
			// Split words wider than a whole line at rune granularity,
			// placing at least one rune per line.
			for cur.width+seg.width > avail {
				part, rest := b.splitSegment(p, seg, avail-cur.width)
				cur.add(part)
				if len(rest.text) == 0 {
					seg.text = nil
					break
				}
				closeLine()
				seg = rest
			}
			if len(seg.text) > 0 {
				cur.add(seg)
			}
		}
	}

	if !cur.empty() || len(lines) == 0 {
		closeLine()
	}

	return lines
}

// segments tokenizes the paragraph's runs into word, space, and hard
// break segments, measuring each as it goes
func (b *LineBreaker) segments(p *flow.ParagraphBlock) []segment {
	var segs []segment

	for ri := range p.Runs {
		run := &p.Runs[ri]
		var cur *segment

		flush := func() {
			if cur != nil && len(cur.text) > 0 {
				segs = append(segs, *cur)
			}
			cur = nil
		}

		for _, r := range run.Text {
			if r == '\n' {
				flush()
				segs = append(segs, segment{runIndex: ri, text: []rune{r}, hard: true, token: run.Token})
				continue
			}
			isSpace := unicode.IsSpace(r)
			if cur == nil || cur.space != isSpace {
				flush()
				cur = &segment{runIndex: ri, space: isSpace, token: run.Token}
			}
			cur.text = append(cur.text, r)
			cur.width += b.advance(run.Font, r)
		}
		flush()
	}

	return segs
}

// splitSegment cuts a segment at the widest prefix fitting avail, with a
// minimum of one rune
func (b *LineBreaker) splitSegment(p *flow.ParagraphBlock, seg segment, avail float64) (part, rest segment) {
	font := p.Runs[seg.runIndex].Font

	cut := 0
	w := 0.0
	for i, r := range seg.text {
		rw := b.advance(font, r)
		if cut > 0 && w+rw > avail {
			break
		}
		w += rw
		cut = i + 1
	}

	part = segment{runIndex: seg.runIndex, text: seg.text[:cut], token: seg.token}
	part.width = b.measure(font, part.text)
	rest = segment{runIndex: seg.runIndex, text: seg.text[cut:], token: seg.token}
	rest.width = b.measure(font, rest.text)
	return part, rest
}

// advance measures one rune, degrading to half an em when the measurer
// has no data rather than failing the layout path
func (b *LineBreaker) advance(sig flow.FontSig, r rune) float64 {
	w, err := b.cache.MeasureChar(sig, r)
	if err != nil {
		size := sig.Size
		if size <= 0 {
			size = defaultFontSize
		}
		return size * halfEm
	}
	return w
}

func (b *LineBreaker) measure(sig flow.FontSig, text []rune) float64 {
	total := 0.0
	for _, r := range text {
		total += b.advance(sig, r)
	}
	return total
}

// paragraphSize returns the dominant font size used for empty lines
func (b *LineBreaker) paragraphSize(p *flow.ParagraphBlock) float64 {
	for i := range p.Runs {
		if p.Runs[i].Font.Size > 0 {
			return p.Runs[i].Font.Size
		}
	}
	return defaultFontSize
}

// lineBuilder accumulates one line's runs and geometry
type lineBuilder struct {
	start int
	pos   int
	runs  []flow.LineRun
	width float64
}

func newLineBuilder(pos int) lineBuilder {
	return lineBuilder{start: pos, pos: pos}
}

func (lb *lineBuilder) empty() bool {
	return len(lb.runs) == 0
}

// skip consumes source runes that land on no line
func (lb *lineBuilder) skip(n int) {
	lb.pos += n
	if lb.empty() {
		lb.start = lb.pos
	}
}

func (lb *lineBuilder) add(seg segment) {
	text := string(seg.text)
	if n := len(lb.runs); n > 0 && lb.runs[n-1].RunIndex == seg.runIndex {
		lb.runs[n-1].Text += text
		lb.runs[n-1].Width += seg.width
	} else {
		lb.runs = append(lb.runs, flow.LineRun{
			RunIndex: seg.runIndex,
			Text:     text,
			Width:    seg.width,
			Token:    seg.token,
		})
	}
	lb.pos += len(seg.text)
	lb.width += seg.width
}

func (lb *lineBuilder) build(p *flow.ParagraphBlock, spacing, ascentRatio, defaultSpacing float64) flow.LineBox {
	size := 0.0
	for _, lr := range lb.runs {
		s := p.Runs[lr.RunIndex].Font.Size
		if s > size {
			size = s
		}
	}
	if size <= 0 {
		size = defaultFontSize
	}
	if spacing <= 0 {
		spacing = defaultSpacing
	}

	return flow.LineBox{
		Runs:   lb.runs,
		Width:  lb.width,
		Height: size * spacing,
		Ascent: size * ascentRatio,
		Start:  lb.start,
		End:    lb.pos,
	}
}
