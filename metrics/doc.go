// Package metrics provides font measurement and the caches the layout
// engine reads geometry from.
//
// Pagination never touches font data directly: paragraphs are measured
// ahead of layout and the results live in caches keyed by font signature
// and paragraph index. This package supplies both halves:
//
//   - [CharMeasurer] - the measurement interface, with two implementations:
//     [StandardMeasurer] (built-in width tables, no font files) and
//     [OpenTypeMeasurer] (real font files via golang.org/x/image).
//   - [FontMetricsCache] - per-character advances keyed by [flow.FontSig],
//     filled on first use.
//   - [ParagraphLineCache] - line boxes keyed by paragraph index, filled
//     by the [LineBreaker] or stored directly.
//   - [CacheWarmer] - optional ahead-of-use population with progress
//     reporting, for hosts that warm caches at document load.
//
// # Measurement model
//
// Advances are returned in points for the signature's size. The standard
// measurer uses the classic Type 1 metrics (Helvetica, Times, Courier) in
// 1000ths of an em and scales by size; East Asian wide and fullwidth
// characters take a full em. The OpenType measurer resolves real glyph
// advances through a font.Face at 72 DPI, so one pixel equals one point.
//
// Caches are not safe for concurrent use. The engine runs layout on a
// single goroutine; hosts that share caches across goroutines must
// serialize access themselves.
package metrics
