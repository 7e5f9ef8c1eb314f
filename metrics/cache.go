package metrics

import (
	"sort"

	"github.com/tsawler/typeset/flow"
)

// CacheStats reports cache effectiveness counters
type CacheStats struct {
	Entries int
	Hits    int
	Misses  int
}

// FontMetricsCache holds per-character advances keyed by font signature.
// Entries are filled through the configured measurer on first use and
// reused until invalidated. Invalidation is the caller's job; the cache
// tracks no dependencies.
type FontMetricsCache struct {
	measurer CharMeasurer
	advances map[flow.FontSig]map[rune]float64
	hits     int
	misses   int
}

// NewFontMetricsCache creates a cache backed by the given measurer. A nil
// measurer gets the standard width tables.
func NewFontMetricsCache(measurer CharMeasurer) *FontMetricsCache {
	if measurer == nil {
		measurer = NewStandardMeasurer()
	}
	return &FontMetricsCache{
		measurer: measurer,
		advances: make(map[flow.FontSig]map[rune]float64),
	}
}

// Has reports whether any advances are cached for the signature
func (c *FontMetricsCache) Has(sig flow.FontSig) bool {
	return len(c.advances[sig]) > 0
}

// MeasureChar returns the advance of r, measuring and caching it on a
// miss. Measurement errors are returned without poisoning the cache.
func (c *FontMetricsCache) MeasureChar(sig flow.FontSig, r rune) (float64, error) {
	if perFont, ok := c.advances[sig]; ok {
		if w, ok := perFont[r]; ok {
			c.hits++
			return w, nil
		}
	}
	c.misses++

	w, err := c.measurer.MeasureChar(sig, r)
	if err != nil {
		return 0, err
	}

	perFont, ok := c.advances[sig]
	if !ok {
		perFont = make(map[rune]float64)
		c.advances[sig] = perFont
	}
	perFont[r] = w
	return w, nil
}

// MeasureString returns the total advance of s
func (c *FontMetricsCache) MeasureString(sig flow.FontSig, s string) (float64, error) {
	total := 0.0
	for _, r := range s {
		w, err := c.MeasureChar(sig, r)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

// Advances returns a copy of the cached advances for the signature, nil
// when nothing is cached
func (c *FontMetricsCache) Advances(sig flow.FontSig) map[rune]float64 {
	perFont, ok := c.advances[sig]
	if !ok {
		return nil
	}
	out := make(map[rune]float64, len(perFont))
	for r, w := range perFont {
		out[r] = w
	}
	return out
}

// Invalidate drops the cached advances for one signature
func (c *FontMetricsCache) Invalidate(sig flow.FontSig) {
	delete(c.advances, sig)
}

// Clear drops all cached advances and resets the counters
func (c *FontMetricsCache) Clear() {
	c.advances = make(map[flow.FontSig]map[rune]float64)
	c.hits = 0
	c.misses = 0
}

// Stats returns hit and miss counters. Entries counts cached signatures.
func (c *FontMetricsCache) Stats() CacheStats {
	return CacheStats{Entries: len(c.advances), Hits: c.hits, Misses: c.misses}
}

// ParagraphLineCache holds broken line boxes keyed by paragraph block
// index, so unchanged paragraphs skip line breaking on re-layout.
type ParagraphLineCache struct {
	lines  map[int][]flow.LineBox
	hits   int
	misses int
}

// NewParagraphLineCache creates an empty line cache
func NewParagraphLineCache() *ParagraphLineCache {
	return &ParagraphLineCache{lines: make(map[int][]flow.LineBox)}
}

// Has reports whether lines are cached for the paragraph index
func (c *ParagraphLineCache) Has(index int) bool {
	_, ok := c.lines[index]
	return ok
}

// Lines returns the cached line boxes for the paragraph index
func (c *ParagraphLineCache) Lines(index int) ([]flow.LineBox, bool) {
	lines, ok := c.lines[index]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return lines, ok
}

// Store caches the line boxes for the paragraph index, replacing any
// previous entry
func (c *ParagraphLineCache) Store(index int, lines []flow.LineBox) {
	c.lines[index] = lines
}

// Invalidate drops the entry for one paragraph index
func (c *ParagraphLineCache) Invalidate(index int) {
	delete(c.lines, index)
}

// InvalidateFrom drops every entry at or after the paragraph index. Edits
// shift the indexes of everything that follows, so callers invalidate the
// tail.
func (c *ParagraphLineCache) InvalidateFrom(index int) {
	for i := range c.lines {
		if i >= index {
			delete(c.lines, i)
		}
	}
}

// Indexes returns the cached paragraph indexes in ascending order
func (c *ParagraphLineCache) Indexes() []int {
	out := make([]int, 0, len(c.lines))
	for i := range c.lines {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clear drops all entries and resets the counters
func (c *ParagraphLineCache) Clear() {
	c.lines = make(map[int][]flow.LineBox)
	c.hits = 0
	c.misses = 0
}

// Stats returns hit and miss counters. Entries counts cached paragraphs.
func (c *ParagraphLineCache) Stats() CacheStats {
	return CacheStats{Entries: len(c.lines), Hits: c.hits, Misses: c.misses}
}
