package metrics

import (
	"math"

	"github.com/tsawler/typeset/flow"
)

// warmSample covers the printable ASCII range, the characters body text
// is overwhelmingly made of.
const warmSample = " !\"#$%&'()*+,-./0123456789:;<=>?@" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`" +
	"abcdefghijklmnopqrstuvwxyz{|}~"

// WarmupConfig holds cache warm-up parameters
type WarmupConfig struct {
	// Fonts to pre-measure.
	Fonts []flow.FontSig

	// SampleText is measured per font; empty means printable ASCII.
	SampleText string

	// PrefetchAdjacent invokes the scroll hook for the first
	// ViewportPages pages after font warming.
	PrefetchAdjacent bool
	ViewportPages    int
}

// DefaultWarmupConfig returns the default warm-up parameters
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		SampleText:    warmSample,
		ViewportPages: 2,
	}
}

// WarmupStats tracks warm-up progress. Counters accumulate across calls
// until ResetProgress.
type WarmupStats struct {
	FontsCached      int
	ParagraphsCached int
	Total            int
}

// ParagraphSource names one paragraph for line pre-calculation
type ParagraphSource struct {
	Index     int
	Paragraph *flow.ParagraphBlock
	Width     float64
	Pos       int
}

// CacheWarmer populates the metrics caches ahead of use so that first
// layout and first scroll hit warm caches. Warming is best effort: fonts
// that fail to measure are counted and skipped.
type CacheWarmer struct {
	fonts   *FontMetricsCache
	lines   *ParagraphLineCache
	breaker *LineBreaker

	// ScrollHook is called once per prefetched viewport page. Hosts hang
	// scroll-driven warming here; the default is no hook.
	ScrollHook func(page int)

	stats WarmupStats
}

// NewCacheWarmer creates a warmer over the given caches. The breaker is
// required only for WarmLines and may be nil otherwise.
func NewCacheWarmer(fonts *FontMetricsCache, lines *ParagraphLineCache, breaker *LineBreaker) *CacheWarmer {
	return &CacheWarmer{fonts: fonts, lines: lines, breaker: breaker}
}

// WarmOnLoad measures the configured fonts into the metrics cache and
// returns cumulative progress. Already-warm fonts count as done. When
// PrefetchAdjacent is set the scroll hook runs for pages 1 through
// ViewportPages.
func (w *CacheWarmer) WarmOnLoad(cfg WarmupConfig) WarmupStats {
	sample := cfg.SampleText
	if sample == "" {
		sample = warmSample
	}

	w.stats.Total += len(cfg.Fonts)
	for _, sig := range cfg.Fonts {
		if !w.fonts.Has(sig) {
			for _, r := range sample {
				if _, err := w.fonts.MeasureChar(sig, r); err != nil {
					break
				}
			}
		}
		w.stats.FontsCached++
	}

	if cfg.PrefetchAdjacent && w.ScrollHook != nil {
		for page := 1; page <= cfg.ViewportPages; page++ {
			w.ScrollHook(page)
		}
	}

	return w.stats
}

// WarmLines pre-breaks the given paragraphs into the line cache and
// returns cumulative progress. Paragraphs already cached count as done.
func (w *CacheWarmer) WarmLines(paragraphs []ParagraphSource) WarmupStats {
	w.stats.Total += len(paragraphs)
	for _, ps := range paragraphs {
		if !w.lines.Has(ps.Index) && w.breaker != nil && ps.Paragraph != nil {
			w.lines.Store(ps.Index, w.breaker.Break(ps.Paragraph, ps.Width, ps.Pos))
		}
		w.stats.ParagraphsCached++
	}
	return w.stats
}

// CompletionPercent returns warm-up progress as a whole percentage,
// 100 when nothing was scheduled
func (w *CacheWarmer) CompletionPercent() int {
	if w.stats.Total == 0 {
		return 100
	}
	done := w.stats.FontsCached + w.stats.ParagraphsCached
	pct := int(math.Round(100 * float64(done) / float64(w.stats.Total)))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Stats returns the cumulative warm-up counters
func (w *CacheWarmer) Stats() WarmupStats {
	return w.stats
}

// ResetProgress zeroes the warm-up counters, typically after a document
// switch
func (w *CacheWarmer) ResetProgress() {
	w.stats = WarmupStats{}
}
