package async

import "sync/atomic"

// Done is the completion signal handed to an iterator. A non-nil err marks the
// element as failed. It must be called exactly once.
type Done func(err error)

// DoneWith is a completion signal that also carries the element's result.
type DoneWith[R any] func(result R, err error)

// Verdict is the completion signal of a verdict iterator, used by Filter,
// Reject, Detect, Some and Every. It reports a boolean, never a failure.
type Verdict func(ok bool)

// Iterator processes one element and signals completion through done.
type Iterator[T any] func(item T, done Done)

// Task is the index-addressed unit a Strategy drives.
type Task func(index int, done Done)

// Callback receives the outcome of a run: nil when every element succeeded.
type Callback func(errs Errors)

// handle is the single-use completion token of one task. The first call to
// signal consumes it; any later call is a caller bug.
type handle struct {
	index    int
	consumed atomic.Bool
	complete func(index int, err error)
}

func (h *handle) signal(err error) {
	if !h.consumed.CompareAndSwap(false, true) {
		panic(ErrCompletionSignaledTwice.Clone().WithDetail("index", h.index))
	}
	h.complete(h.index, err)
}

// runTask invokes task once for index with a fresh completion handle.
func runTask(index int, task Task, complete func(index int, err error)) {
	h := &handle{index: index, complete: complete}
	task(index, h.signal)
}
