// Package tables tracks per-table layout state while a document is
// edited.
//
// Table geometry is expensive to recompute and cell edits arrive in
// bursts, so the [Tracker] keeps column widths and row heights per table,
// marks tables dirty as cells change, and coalesces recalculation behind
// a short debounce. Hosts hang the actual recomputation on
// [Tracker.OnRecalc]; the tracker only decides when it is due.
//
// Debouncing is keyed by table: editing one table never delays another,
// and every further edit within the delay window restarts that table's
// timer. [Tracker.Clear] cancels all outstanding timers and must run when
// the document closes.
//
// [FitColumns] distributes a table's available width over its columns
// from the preferred widths the document declares, scaling down
// proportionally when they overflow.
package tables
