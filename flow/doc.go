// Package flow provides the intermediate representation (IR) for paginated
// document layout.
//
// This package defines the data structures that cross the engine boundary:
// flowable content goes in as a flat block list, positioned pages come out.
// Adapters produce these types from a document model, measurers annotate
// them, and painters consume the result.
//
// # Blocks
//
// A document arrives as a flat []FlowBlock in reading order. [FlowBlock] is a
// tagged variant: the Kind field selects which payload pointer is set:
//
//   - [ParagraphBlock] - styled text runs
//   - [TableBlock] - rows and cells
//   - [ImageBlock] - raster content placed by reference
//   - [DrawingBlock] - vector content placed by reference
//   - [SectionProperties] - a section break carrying page geometry
//
// Blocks anchored to a page, margin, or paragraph carry an [Anchor] and are
// positioned by the anchoring pass rather than the main flow.
//
// # Measures
//
// Each block is paired with a [Measure] at the same index. Measures carry the
// geometry the layout needs (line boxes, column widths, intrinsic sizes) so
// that pagination itself never touches font data.
//
// # Pages
//
// The engine produces a [Result]: pages of absolutely positioned [Fragment]
// values, plus layout statistics and any [Warning] degradations. A fragment
// records the source block and the document range it covers, which is what
// hit-testing and cursor mapping key on.
//
// # Geometry
//
// [BBox] and [Point] use a top-left origin with y increasing downward, the
// orientation painters and hit-testers work in. All lengths are in points
// (1/72 inch). [PageSize] presets for common paper formats are provided.
package flow
