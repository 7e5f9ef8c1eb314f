// Package paginate arranges measured flow blocks onto pages.
//
// The [Paginator] is the core of the engine: it walks blocks in document
// order with a cursor, fills columns top to bottom and pages front to
// back, and emits absolutely positioned fragments. It is a pure
// function over its inputs plus configuration; it never mutates blocks
// or measures and builds a fresh [flow.Result] every pass.
//
// # Flow rules
//
// Paragraphs flow line by line and may split across columns and pages;
// consecutive lines in one column form one text fragment. Tables flow row
// by row and split between rows, never through one. Images and drawings
// are constrained to the column width, keep their aspect ratio, and never
// split: when one does not fit below the cursor it moves to the next
// column or page whole. A block taller than the page content area is
// placed anyway and overflows, with a warning, so layout always
// terminates.
//
// # Sections
//
// A section break carries new page geometry that applies after the
// break, never retroactively. A next-page break starts the geometry on a
// fresh page; a continuous break restarts the column band at the cursor
// on the current page and carries the full geometry from the next page
// on. Pages are created lazily, so a trailing section break produces no
// empty page.
//
// # Anchored objects
//
// Blocks with an anchor leave the main flow. Page- and margin-relative
// objects are registered against the first page, under the body text.
// Paragraph-relative objects attach to the nearest preceding paragraph,
// falling back to the nearest following one, and are placed above the
// body text once that paragraph lands; a document with no paragraph at
// all drops them with a warning.
//
// # Page number tokens
//
// [ResolveTokens] substitutes page-number and page-count text into
// paragraph runs after pagination, when both values are known, clearing
// the markers as it goes. [ResolveLineTokens] does the same per page
// over fragment line runs, copying before it writes so the source
// measure keeps its markers for later passes.
package paginate
