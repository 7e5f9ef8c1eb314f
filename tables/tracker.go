package tables

import (
	"sort"
	"sync"
	"time"
)

// LayoutState is the remembered geometry of one table
type LayoutState struct {
	ColumnWidths []float64
	RowHeights   []float64
	Dirty        bool
}

// TrackerConfig holds tracker timing parameters
type TrackerConfig struct {
	// RecalcDelay is the quiet period after the last cell edit before a
	// recalculation is due.
	RecalcDelay time.Duration
}

// DefaultTrackerConfig returns the default tracker configuration
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{RecalcDelay: 100 * time.Millisecond}
}

// stopFunc cancels a scheduled timer, reporting whether it was still
// pending
type stopFunc func() bool

// Tracker keeps per-table layout state and debounces recalculation.
// Edits mark a table dirty and restart its timer; when the timer fires
// with the table still dirty, OnRecalc runs. Safe for concurrent use.
type Tracker struct {
	mu          sync.Mutex
	config      TrackerConfig
	states      map[int]*LayoutState
	generations map[int]int
	timers      map[int]stopFunc
	after       func(d time.Duration, fn func()) stopFunc

	// OnRecalc is called outside the tracker lock when a table's debounce
	// expires and the table is still dirty. Nil disables the callback;
	// dirty state is still tracked and readable through DirtyTables.
	OnRecalc func(table int)
}

// NewTracker creates a tracker with the default configuration
func NewTracker() *Tracker {
	return NewTrackerWithConfig(DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration
func NewTrackerWithConfig(config TrackerConfig) *Tracker {
	if config.RecalcDelay <= 0 {
		config.RecalcDelay = DefaultTrackerConfig().RecalcDelay
	}
	return &Tracker{
		config:      config,
		states:      make(map[int]*LayoutState),
		generations: make(map[int]int),
		timers:      make(map[int]stopFunc),
		after: func(d time.Duration, fn func()) stopFunc {
			return time.AfterFunc(d, fn).Stop
		},
	}
}

// OnCellEdit records an edit to a cell, marking the table dirty and
// restarting its recalculation timer. Which cell changed does not affect
// tracking; recalculation granularity is the whole table.
func (t *Tracker) OnCellEdit(table, cell int) {
	t.mu.Lock()
	t.stateLocked(table).Dirty = true

	t.generations[table]++
	gen := t.generations[table]
	if stop := t.timers[table]; stop != nil {
		stop()
	}
	t.timers[table] = t.after(t.config.RecalcDelay, func() {
		t.fire(table, gen)
	})
	t.mu.Unlock()
}

// fire runs when a table's debounce expires. A stale generation means the
// timer was superseded by a later edit and the firing is ignored.
func (t *Tracker) fire(table, gen int) {
	t.mu.Lock()
	if t.generations[table] != gen {
		t.mu.Unlock()
		return
	}
	delete(t.timers, table)
	st, ok := t.states[table]
	due := ok && st.Dirty
	cb := t.OnRecalc
	t.mu.Unlock()

	if due && cb != nil {
		cb(table)
	}
}

// MarkColumnsDirty marks the table dirty without scheduling a
// recalculation, for callers that batch their own recomputes
func (t *Tracker) MarkColumnsDirty(table int) {
	t.mu.Lock()
	t.stateLocked(table).Dirty = true
	t.mu.Unlock()
}

// UpdateState records freshly computed geometry for the table, clears its
// dirty flag, and cancels any pending recalculation
func (t *Tracker) UpdateState(table int, columnWidths, rowHeights []float64) {
	t.mu.Lock()
	st := t.stateLocked(table)
	st.ColumnWidths = append([]float64(nil), columnWidths...)
	st.RowHeights = append([]float64(nil), rowHeights...)
	st.Dirty = false

	t.generations[table]++
	if stop := t.timers[table]; stop != nil {
		stop()
		delete(t.timers, table)
	}
	t.mu.Unlock()
}

// State returns a copy of the table's layout state
func (t *Tracker) State(table int) (LayoutState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[table]
	if !ok {
		return LayoutState{}, false
	}
	return LayoutState{
		ColumnWidths: append([]float64(nil), st.ColumnWidths...),
		RowHeights:   append([]float64(nil), st.RowHeights...),
		Dirty:        st.Dirty,
	}, true
}

// DirtyTables returns the indexes of all dirty tables in ascending order
func (t *Tracker) DirtyTables() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []int
	for table, st := range t.states {
		if st.Dirty {
			out = append(out, table)
		}
	}
	sort.Ints(out)
	return out
}

// PendingRecalcs returns the number of tables with a timer outstanding
func (t *Tracker) PendingRecalcs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Clear cancels all timers and drops all state. Run it when the document
// closes, or timers outlive the tables they belong to.
func (t *Tracker) Clear() {
	t.mu.Lock()
	for table, stop := range t.timers {
		stop()
		delete(t.timers, table)
	}
	t.states = make(map[int]*LayoutState)
	t.generations = make(map[int]int)
	t.mu.Unlock()
}

func (t *Tracker) stateLocked(table int) *LayoutState {
	st, ok := t.states[table]
	if !ok {
		st = &LayoutState{}
		t.states[table] = st
	}
	return st
}
