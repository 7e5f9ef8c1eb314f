// Package typeset lays out flowable document content onto pages.
//
// The engine takes a flattened document (paragraphs, tables, images,
// drawings, section breaks) with per-block measurements and produces
// positioned page fragments for a painter to render. Layout itself is
// synchronous; the engine also carries the scheduling and caching state
// an editing host needs for incremental re-layout between keystrokes.
//
// Basic usage:
//
//	result := typeset.Layout(blocks)
//	for _, page := range result.Pages {
//	    // paint page.Fragments
//	}
//
// With an engine, caches persist across passes and re-layout can be
// scheduled by priority:
//
//	eng := typeset.New()
//	eng.SetDocument(blocks, nil)
//	eng.RequestLayout(schedule.PriorityLow, schedule.ScopeFull)
//	for eng.ProcessNext() != nil {
//	}
//	result := eng.Result()
//
// For finer control, the lower-level paginate, metrics, schedule,
// tables, and track packages are also available.
package typeset

import (
	"sync"

	"github.com/tsawler/typeset/flow"
	"github.com/tsawler/typeset/metrics"
	"github.com/tsawler/typeset/paginate"
	"github.com/tsawler/typeset/schedule"
	"github.com/tsawler/typeset/tables"
)

// Engine owns the layout state an editing host works against: the font
// and line caches, the paginator, the layout scheduler, and the table
// tracker. Every collaborator is reachable through an accessor; nothing
// lives in package-level state. The document and committed result are
// guarded by a mutex so hosts may schedule from event handlers while a
// layout pass runs elsewhere; the pass itself is single-threaded.
type Engine struct {
	config Config

	fonts     *metrics.FontMetricsCache
	lines     *metrics.ParagraphLineCache
	breaker   *metrics.LineBreaker
	warmer    *metrics.CacheWarmer
	scheduler *schedule.Scheduler
	tables    *tables.Tracker
	paginator *paginate.Paginator

	mu       sync.Mutex
	version  int
	blocks   []flow.FlowBlock
	measures []flow.Measure
	result   *flow.Result
}

// New creates an engine with default configuration
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration. A nil
// measurer and a zero page size fall back to the defaults.
func NewWithConfig(config Config) *Engine {
	if config.Measurer == nil {
		config.Measurer = metrics.NewStandardMeasurer()
	}
	if config.Section.PageSize.Width <= 0 || config.Section.PageSize.Height <= 0 {
		config.Section.PageSize = flow.Letter
	}
	config.Section.Columns = config.Section.Columns.Normalize()

	fonts := metrics.NewFontMetricsCache(config.Measurer)
	lines := metrics.NewParagraphLineCache()
	breaker := metrics.NewLineBreakerWithConfig(fonts, config.Breaker)

	e := &Engine{
		config:    config,
		fonts:     fonts,
		lines:     lines,
		breaker:   breaker,
		warmer:    metrics.NewCacheWarmer(fonts, lines, breaker),
		scheduler: schedule.NewScheduler(),
		tables: tables.NewTrackerWithConfig(tables.TrackerConfig{
			RecalcDelay: config.TableRecalcDelay,
		}),
		paginator: paginate.NewWithConfig(paginate.Config{
			Section: config.Section,
			Lines:   lines,
		}),
	}

	// A table whose debounce expires needs its page re-laid-out.
	e.tables.OnRecalc = func(table int) {
		e.RequestLayout(schedule.PriorityHigh, schedule.ScopeViewport)
	}
	return e
}

// Fonts returns the engine's font metrics cache
func (e *Engine) Fonts() *metrics.FontMetricsCache {
	return e.fonts
}

// LineCache returns the engine's paragraph line cache
func (e *Engine) LineCache() *metrics.ParagraphLineCache {
	return e.lines
}

// Warmer returns the engine's cache warmer
func (e *Engine) Warmer() *metrics.CacheWarmer {
	return e.warmer
}

// Scheduler returns the engine's layout scheduler
func (e *Engine) Scheduler() *schedule.Scheduler {
	return e.scheduler
}

// Tables returns the engine's table layout tracker
func (e *Engine) Tables() *tables.Tracker {
	return e.tables
}

// SetDocument replaces the engine's document and returns the new
// document version. Measures may be nil, in which case the engine
// measures the blocks itself during layout. The engine holds the given
// slices until they are replaced; per-document caches reset.
func (e *Engine) SetDocument(blocks []flow.FlowBlock, measures []flow.Measure) int {
	e.mu.Lock()
	e.version++
	v := e.version
	e.blocks = blocks
	e.measures = measures
	e.mu.Unlock()

	e.lines.Clear()
	e.tables.Clear()
	return v
}

// Version returns the current document version. Versions increase on
// SetDocument and EditBlock; scheduled tasks carry the version they were
// requested against so stale work can be skipped.
func (e *Engine) Version() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// EditBlock replaces the block at index, and its measure when one is
// given and the engine holds caller-supplied measures. Cached lines from
// the edited block on are invalidated and a critical re-layout is
// enqueued; the id of that task is returned. Out-of-range indexes do
// nothing and return 0.
func (e *Engine) EditBlock(index int, blk flow.FlowBlock, measure *flow.Measure) int {
	e.mu.Lock()
	if index < 0 || index >= len(e.blocks) {
		e.mu.Unlock()
		return 0
	}
	e.blocks[index] = blk
	if measure != nil && index < len(e.measures) {
		e.measures[index] = *measure
	}
	e.version++
	v := e.version
	e.mu.Unlock()

	e.lines.InvalidateFrom(index)
	return e.scheduler.Enqueue(schedule.Request{
		Version:  v,
		Priority: schedule.PriorityCritical,
		Scope:    schedule.ScopeParagraph,
	})
}

// Layout replaces the engine's document and lays it out immediately.
// Equivalent to SetDocument followed by Relayout.
func (e *Engine) Layout(blocks []flow.FlowBlock, measures []flow.Measure) *flow.Result {
	e.SetDocument(blocks, measures)
	return e.Relayout()
}

// Relayout runs a synchronous layout pass over the engine's current
// document, commits the result, and returns it
func (e *Engine) Relayout() *flow.Result {
	e.mu.Lock()
	blocks, measures := e.blocks, e.measures
	e.mu.Unlock()

	result := e.pass(blocks, measures)

	e.mu.Lock()
	e.result = result
	e.mu.Unlock()
	return result
}

// Result returns the most recently committed layout, nil before the
// first pass
func (e *Engine) Result() *flow.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// RequestLayout enqueues a re-layout of the current document at the
// given priority and returns the task id
func (e *Engine) RequestLayout(priority schedule.Priority, scope schedule.Scope) int {
	return e.scheduler.Enqueue(schedule.Request{
		Version:  e.Version(),
		Priority: priority,
		Scope:    scope,
	})
}

// ProcessNext dequeues the next layout task, runs a pass, and commits
// the result. Returns the task handled, nil when nothing was pending.
//
// A task whose version is older than the document's is completed without
// a pass; the request that bumped the version covers it. A pass writes
// into a fresh result, so a task aborted mid-pass (AbortBelow from
// another goroutine) commits nothing and the previous result stays
// visible.
func (e *Engine) ProcessNext() *schedule.Task {
	task := e.scheduler.Dequeue()
	if task == nil {
		return nil
	}

	if task.Version != e.Version() {
		e.scheduler.CompleteCurrent()
		return task
	}

	e.mu.Lock()
	blocks, measures := e.blocks, e.measures
	e.mu.Unlock()

	result := e.pass(blocks, measures)

	if cur := e.scheduler.Current(); cur != nil && cur.ID == task.ID {
		e.mu.Lock()
		e.result = result
		e.mu.Unlock()
		e.scheduler.CompleteCurrent()
	}
	return task
}

// pass runs one layout pass without touching the committed result
func (e *Engine) pass(blocks []flow.FlowBlock, measures []flow.Measure) *flow.Result {
	if measures == nil {
		measures = e.MeasureBlocks(blocks)
	}
	result := e.paginator.Layout(blocks, measures)
	resolvePageTokens(result)
	return result
}

// Warm pre-measures the document's fonts and pre-breaks its paragraphs
// so the first layout pass hits warm caches. Returns cumulative warm-up
// progress.
func (e *Engine) Warm() metrics.WarmupStats {
	e.mu.Lock()
	blocks := e.blocks
	e.mu.Unlock()

	cfg := metrics.DefaultWarmupConfig()
	cfg.Fonts = collectFonts(blocks)
	e.warmer.WarmOnLoad(cfg)

	width := e.columnWidth()
	var sources []metrics.ParagraphSource
	for i := range blocks {
		if blocks[i].Kind != flow.BlockParagraph || blocks[i].Paragraph == nil {
			continue
		}
		sources = append(sources, metrics.ParagraphSource{
			Index:     i,
			Paragraph: blocks[i].Paragraph,
			Width:     indentedWidth(width, blocks[i].Paragraph.Indent),
			Pos:       blocks[i].Start,
		})
	}
	return e.warmer.WarmLines(sources)
}

// resolvePageTokens substitutes page numbers into every text fragment,
// per the page each fragment landed on
func resolvePageTokens(result *flow.Result) {
	total := result.PageCount()
	for pi := range result.Pages {
		page := &result.Pages[pi]
		for fi := range page.Fragments {
			f := &page.Fragments[fi]
			if f.Text != nil {
				paginate.ResolveLineTokens(f.Text.Lines, page.Number, total)
			}
		}
	}
}

// collectFonts returns the distinct font signatures used by the blocks,
// in first-use order
func collectFonts(blocks []flow.FlowBlock) []flow.FontSig {
	seen := make(map[flow.FontSig]bool)
	var fonts []flow.FontSig
	add := func(sig flow.FontSig) {
		if !seen[sig] {
			seen[sig] = true
			fonts = append(fonts, sig)
		}
	}
	for i := range blocks {
		switch blocks[i].Kind {
		case flow.BlockParagraph:
			if p := blocks[i].Paragraph; p != nil {
				for _, r := range p.Runs {
					add(r.Font)
				}
			}
		case flow.BlockTable:
			if t := blocks[i].Table; t != nil {
				for _, row := range t.Rows {
					for _, cell := range row.Cells {
						for _, r := range cell.Runs {
							add(r.Font)
						}
					}
				}
			}
		}
	}
	return fonts
}

// Layout lays out blocks with a fresh engine using the default
// configuration and self-measured geometry
func Layout(blocks []flow.FlowBlock) *flow.Result {
	return New().Layout(blocks, nil)
}

// MeasureBlocks measures blocks with a fresh engine using the default
// configuration
func MeasureBlocks(blocks []flow.FlowBlock) []flow.Measure {
	return New().MeasureBlocks(blocks)
}
