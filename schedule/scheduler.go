package schedule

import "sync"

// Priority orders layout work. Lower values run first.
type Priority int

const (
	// PriorityCritical is for the paragraph under active edit.
	PriorityCritical Priority = iota
	// PriorityHigh is for the visible viewport.
	PriorityHigh
	// PriorityMedium is for pages adjacent to the viewport.
	PriorityMedium
	// PriorityLow is for full-document background work.
	PriorityLow
)

// NumPriorities is the number of priority levels.
const NumPriorities = 4

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// clamp forces out-of-range priorities into the valid band
func (p Priority) clamp() Priority {
	if p < PriorityCritical {
		return PriorityCritical
	}
	if p > PriorityLow {
		return PriorityLow
	}
	return p
}

// Scope describes how much of the document a task relays out
type Scope int

const (
	ScopeParagraph Scope = iota
	ScopeViewport
	ScopeAdjacent
	ScopeFull
)

func (s Scope) String() string {
	switch s {
	case ScopeParagraph:
		return "Paragraph"
	case ScopeViewport:
		return "Viewport"
	case ScopeAdjacent:
		return "Adjacent"
	default:
		return "Full"
	}
}

// Status is a task's lifecycle state
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusAborted
	StatusCompleted
)

func (st Status) String() string {
	switch st {
	case StatusPending:
		return "Pending"
	case StatusRunning:
		return "Running"
	case StatusAborted:
		return "Aborted"
	default:
		return "Completed"
	}
}

// Request describes one unit of layout work. Version lets workers detect
// that the document moved on while the task waited.
type Request struct {
	Version  int
	Priority Priority
	Scope    Scope
}

// Task is a scheduled request. IDs are unique and strictly increasing,
// starting at 1.
type Task struct {
	ID int
	Request
	Status Status
}

// QueueStats is a snapshot of queue depth per priority
type QueueStats struct {
	Pending   [NumPriorities]int
	Total     int
	Completed int
	Aborted   int
}

// Scheduler holds pending layout tasks in one FIFO queue per priority and
// hands them out highest priority first. Safe for concurrent use.
type Scheduler struct {
	mu        sync.Mutex
	queues    [NumPriorities][]*Task
	current   *Task
	nextID    int
	completed int
	aborted   int
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Enqueue adds a request and returns its task id. Out-of-range priorities
// are clamped.
func (s *Scheduler) Enqueue(req Request) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.Priority = req.Priority.clamp()
	task := &Task{ID: s.nextID, Request: req, Status: StatusPending}
	s.nextID++
	s.queues[req.Priority] = append(s.queues[req.Priority], task)
	return task.ID
}

// Dequeue pops the highest-priority pending task, marks it running, and
// returns it. Returns nil when nothing is pending or a task is already
// running; at most one task runs at a time.
func (s *Scheduler) Dequeue() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil
	}

	for p := range s.queues {
		if len(s.queues[p]) == 0 {
			continue
		}
		task := s.queues[p][0]
		s.queues[p] = s.queues[p][1:]
		task.Status = StatusRunning
		s.current = task
		return task
	}
	return nil
}

// HasPending reports whether any task is waiting
func (s *Scheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for p := range s.queues {
		if len(s.queues[p]) > 0 {
			return true
		}
	}
	return false
}

// PendingCount returns the number of waiting tasks across all priorities
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked()
}

func (s *Scheduler) pendingLocked() int {
	n := 0
	for p := range s.queues {
		n += len(s.queues[p])
	}
	return n
}

// Stats returns a snapshot of per-priority queue depth and lifetime
// completion counters
func (s *Scheduler) Stats() QueueStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := QueueStats{Completed: s.completed, Aborted: s.aborted}
	for p := range s.queues {
		stats.Pending[p] = len(s.queues[p])
		stats.Total += len(s.queues[p])
	}
	return stats
}

// AbortBelow discards every pending task at or below the given priority
// and aborts the running task if it is at or below it. The running task is
// not interrupted; it keeps executing and finds its status changed at the
// next cooperative check.
func (s *Scheduler) AbortBelow(p Priority) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p = p.clamp()
	for q := int(p); q < NumPriorities; q++ {
		for _, task := range s.queues[q] {
			task.Status = StatusAborted
			s.aborted++
		}
		s.queues[q] = nil
	}

	if s.current != nil && s.current.Priority >= p {
		s.current.Status = StatusAborted
		s.aborted++
		s.current = nil
	}
}

// CompleteCurrent marks the running task completed. Without a running task
// it does nothing.
func (s *Scheduler) CompleteCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.current.Status = StatusCompleted
	s.completed++
	s.current = nil
}

// Current returns the running task, nil when idle
func (s *Scheduler) Current() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear drops all pending tasks and the running task without touching the
// completion counters. Task ids keep increasing across a clear.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for p := range s.queues {
		s.queues[p] = nil
	}
	s.current = nil
}
