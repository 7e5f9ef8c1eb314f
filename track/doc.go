// Package track maps document positions across tracked changes.
//
// When change tracking is on, deleted text stays in the document so it can
// be shown struck through or hidden. Layout and cursor logic then need two
// coordinate spaces: the stored document, which still contains deletions,
// and the visual document, which does not. This package extracts tracked
// spans from a document tree and converts positions between the two
// spaces.
//
// Positions use the convention of tree-structured editors: a text node
// spans one position per character, an element node spans one opening and
// one closing position around its children, and the root contributes no
// positions of its own.
//
// [VisualPosition] collapses deletions: positions after a deletion shift
// left by its length and positions inside one clamp to where the deletion
// starts. [CursorAdjustment] is the cumulative shift alone, for callers
// that apply it themselves. Both treat deletion spans as half-open
// [Start, End) ranges. Insertions never move positions; inserted text is
// part of both spaces.
package track
