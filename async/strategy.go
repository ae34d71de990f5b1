package async

import (
	"fmt"
	"sync"
)

// Strategy schedules n index-addressed tasks and reports their aggregated
// outcome to final exactly once, after every started task completed.
//
// Each Run call owns its own counters and accumulator; a Strategy value can be
// shared freely between concurrent runs.
type Strategy interface {
	Run(n int, task Task, final Callback) *Events
	String() string
}

// policy is the single engine behind every built-in strategy. It differs only
// in how many tasks may be in flight at once.
type policy struct {
	limit     int
	unbounded bool
}

// Parallel starts every element immediately.
func Parallel() Strategy { return policy{unbounded: true} }

// Series starts one element at a time, in index order.
func Series() Strategy { return policy{limit: 1} }

// Limit keeps at most n elements in flight, started in index order.
// A limit of zero or less runs nothing.
func Limit(n int) Strategy { return policy{limit: n} }

func (p policy) String() string {
	switch {
	case p.unbounded:
		return "parallel"
	case p.limit == 1:
		return "series"
	default:
		return fmt.Sprintf("limit(%d)", p.limit)
	}
}

func (p policy) Run(n int, task Task, final Callback) *Events {
	limit := p.limit
	if p.unbounded {
		limit = n
	}
	ev := newEvents()
	if n <= 0 || limit <= 0 {
		finish(ev, final, nil)
		return ev
	}
	r := &run{n: n, limit: limit, task: task, final: final, events: ev}
	r.replenish()
	return ev
}

// run is the bookkeeping of one strategy invocation.
type run struct {
	n     int
	limit int
	task  Task
	final Callback

	mu        sync.Mutex
	started   int
	completed int
	running   int
	pumping   bool
	errs      Errors

	events *Events
}

// replenish starts queued tasks until the in-flight limit is reached.
//
// Only one goroutine pumps at a time. A completion that arrives while a pump
// is active, including one signalled synchronously from inside a task, just
// returns: the active pump observes the freed slot on its next check. This
// keeps stack depth constant for iterators that complete inline.
func (r *run) replenish() {
	r.mu.Lock()
	if r.pumping {
		r.mu.Unlock()
		return
	}
	r.pumping = true
	for r.running < r.limit && r.started < r.n {
		i := r.started
		r.started++
		r.running++
		r.mu.Unlock()
		runTask(i, r.task, r.complete)
		r.mu.Lock()
	}
	r.pumping = false
	r.mu.Unlock()
}

func (r *run) complete(i int, err error) {
	if err != nil {
		r.mu.Lock()
		r.errs = r.errs.record(i, err)
		r.mu.Unlock()
		// Emitted before the completion is counted, so every emission
		// happens before the final callback.
		r.events.emit(i, err)
	}

	r.mu.Lock()
	r.running--
	r.completed++
	last := r.completed == r.n
	errs := r.errs
	r.mu.Unlock()

	if last {
		finish(r.events, r.final, errs)
		return
	}
	r.replenish()
}

func finish(ev *Events, final Callback, errs Errors) {
	defer ev.close()
	if final != nil {
		final(errs)
	}
}
