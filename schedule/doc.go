// Package schedule provides the priority queue that orders layout work.
//
// Hosts enqueue layout requests as the document changes and drain them one
// at a time from their render loop. Four priority levels keep interactive
// work ahead of background passes:
//
//   - [PriorityCritical] - the paragraph being edited right now
//   - [PriorityHigh] - the visible viewport
//   - [PriorityMedium] - pages adjacent to the viewport
//   - [PriorityLow] - full-document background passes
//
// Within a level, tasks run in arrival order. At most one task runs at a
// time; [Scheduler.Dequeue] returns nil until the running task is
// completed or aborted.
//
// Cancellation is cooperative. [Scheduler.AbortBelow] discards queued work
// at or below a priority and marks a running task aborted, but never
// interrupts it; the worker notices the abort at its next check and stops
// committing. A completed or aborted task never runs again.
package schedule
