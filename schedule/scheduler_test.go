package schedule

import "testing"

func TestEnqueueAssignsIncreasingIDs(t *testing.T) {
	s := NewScheduler()

	ids := []int{
		s.Enqueue(Request{Priority: PriorityLow, Scope: ScopeFull}),
		s.Enqueue(Request{Priority: PriorityCritical, Scope: ScopeParagraph}),
		s.Enqueue(Request{Priority: PriorityHigh, Scope: ScopeViewport}),
	}

	for i, want := range []int{1, 2, 3} {
		if ids[i] != want {
			t.Errorf("Enqueue() id = %d, want %d", ids[i], want)
		}
	}
}

func TestDequeuePriorityOrder(t *testing.T) {
	s := NewScheduler()
	s.Enqueue(Request{Priority: PriorityLow, Scope: ScopeFull})
	s.Enqueue(Request{Priority: PriorityMedium, Scope: ScopeAdjacent})
	s.Enqueue(Request{Priority: PriorityCritical, Scope: ScopeParagraph})
	s.Enqueue(Request{Priority: PriorityHigh, Scope: ScopeViewport})

	want := []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
	for _, p := range want {
		task := s.Dequeue()
		if task == nil {
			t.Fatalf("Dequeue() = nil, want priority %v task", p)
		}
		if task.Priority != p {
			t.Errorf("Dequeue() priority = %v, want %v", task.Priority, p)
		}
		if task.Status != StatusRunning {
			t.Errorf("dequeued task status = %v, want Running", task.Status)
		}
		s.CompleteCurrent()
	}

	if task := s.Dequeue(); task != nil {
		t.Errorf("Dequeue() on empty = %+v, want nil", task)
	}
}

func TestDequeueFIFOWithinPriority(t *testing.T) {
	s := NewScheduler()
	first := s.Enqueue(Request{Priority: PriorityHigh, Scope: ScopeViewport})
	second := s.Enqueue(Request{Priority: PriorityHigh, Scope: ScopeViewport})

	task := s.Dequeue()
	if task.ID != first {
		t.Errorf("Dequeue() id = %d, want %d (FIFO)", task.ID, first)
	}
	s.CompleteCurrent()

	task = s.Dequeue()
	if task.ID != second {
		t.Errorf("Dequeue() id = %d, want %d", task.ID, second)
	}
}

func TestSingleRunningTask(t *testing.T) {
	s := NewScheduler()
	s.Enqueue(Request{Priority: PriorityHigh})
	s.Enqueue(Request{Priority: PriorityHigh})

	running := s.Dequeue()
	if running == nil {
		t.Fatal("Dequeue() = nil with pending tasks")
	}

	// The second task stays queued until the first finishes.
	if task := s.Dequeue(); task != nil {
		t.Errorf("Dequeue() while running = %+v, want nil", task)
	}
	if cur := s.Current(); cur == nil || cur.ID != running.ID {
		t.Errorf("Current() = %+v, want task %d", cur, running.ID)
	}

	s.CompleteCurrent()
	if running.Status != StatusCompleted {
		t.Errorf("task status after CompleteCurrent = %v, want Completed", running.Status)
	}
	if s.Current() != nil {
		t.Error("Current() != nil after CompleteCurrent")
	}

	if task := s.Dequeue(); task == nil {
		t.Error("Dequeue() = nil after completing the running task")
	}
}

func TestCompleteCurrentWithoutRunningTask(t *testing.T) {
	s := NewScheduler()
	s.CompleteCurrent() // must not panic or count anything

	if stats := s.Stats(); stats.Completed != 0 {
		t.Errorf("Completed = %d, want 0", stats.Completed)
	}
}

func TestAbortBelow(t *testing.T) {
	s := NewScheduler()
	s.Enqueue(Request{Priority: PriorityCritical})
	s.Enqueue(Request{Priority: PriorityHigh})
	s.Enqueue(Request{Priority: PriorityMedium})
	s.Enqueue(Request{Priority: PriorityLow})

	s.AbortBelow(PriorityMedium)

	stats := s.Stats()
	if stats.Pending[PriorityCritical] != 1 || stats.Pending[PriorityHigh] != 1 {
		t.Errorf("Pending = %v, want critical and high kept", stats.Pending)
	}
	if stats.Pending[PriorityMedium] != 0 || stats.Pending[PriorityLow] != 0 {
		t.Errorf("Pending = %v, want medium and low discarded", stats.Pending)
	}
	if stats.Aborted != 2 {
		t.Errorf("Aborted = %d, want 2", stats.Aborted)
	}
}

func TestAbortBelowCancelsRunningTask(t *testing.T) {
	s := NewScheduler()
	s.Enqueue(Request{Priority: PriorityLow, Scope: ScopeFull})

	task := s.Dequeue()
	s.AbortBelow(PriorityLow)

	if task.Status != StatusAborted {
		t.Errorf("running task status = %v, want Aborted", task.Status)
	}
	if s.Current() != nil {
		t.Error("Current() != nil after aborting the running task")
	}

	// A higher-priority running task survives the same call.
	s.Enqueue(Request{Priority: PriorityCritical})
	task = s.Dequeue()
	s.AbortBelow(PriorityLow)
	if task.Status != StatusRunning {
		t.Errorf("critical task status = %v, want still Running", task.Status)
	}
}

func TestQueueStatsAndHasPending(t *testing.T) {
	s := NewScheduler()
	if s.HasPending() {
		t.Error("HasPending() = true on empty scheduler")
	}

	s.Enqueue(Request{Priority: PriorityHigh})
	s.Enqueue(Request{Priority: PriorityHigh})
	s.Enqueue(Request{Priority: PriorityLow})

	if !s.HasPending() {
		t.Error("HasPending() = false with queued tasks")
	}
	if n := s.PendingCount(); n != 3 {
		t.Errorf("PendingCount() = %d, want 3", n)
	}

	stats := s.Stats()
	if stats.Pending[PriorityHigh] != 2 || stats.Pending[PriorityLow] != 1 || stats.Total != 3 {
		t.Errorf("Stats() = %+v, want 2 high, 1 low", stats)
	}
}

func TestClearKeepsIDCounter(t *testing.T) {
	s := NewScheduler()
	s.Enqueue(Request{Priority: PriorityHigh})
	s.Enqueue(Request{Priority: PriorityLow})
	s.Dequeue()

	s.Clear()

	if s.HasPending() || s.Current() != nil {
		t.Error("Clear() left tasks behind")
	}

	if id := s.Enqueue(Request{Priority: PriorityHigh}); id != 3 {
		t.Errorf("Enqueue() after Clear() id = %d, want 3", id)
	}
}

func TestEnqueueClampsPriority(t *testing.T) {
	s := NewScheduler()
	s.Enqueue(Request{Priority: Priority(99)})
	s.Enqueue(Request{Priority: Priority(-5)})

	stats := s.Stats()
	if stats.Pending[PriorityLow] != 1 || stats.Pending[PriorityCritical] != 1 {
		t.Errorf("Stats() = %v, want clamped to the priority band", stats.Pending)
	}
}
