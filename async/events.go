package async

import (
	"slices"
	"sync"
)

// Events observes a single strategy run. It emits every item failure as it is
// recorded and signals when the final callback has returned.
//
// Listeners are not replayed: a listener registered after a failure was
// emitted never sees it. Runs that finish synchronously (empty input,
// non-positive limit, iterators that complete inline) may be over before
// OnError is called.
type Events struct {
	mu        sync.Mutex
	listeners []func(index int, err error)
	done      chan struct{}
}

func newEvents() *Events {
	return &Events{done: make(chan struct{})}
}

// OnError registers fn for every subsequent item failure and returns e.
// fn may run on any goroutine that completes an item.
func (e *Events) OnError(fn func(index int, err error)) *Events {
	if fn == nil {
		return e
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
	return e
}

// Done is closed once the final callback of the run has returned.
func (e *Events) Done() <-chan struct{} { return e.done }

// Wait blocks until Done is closed.
func (e *Events) Wait() { <-e.done }

func (e *Events) emit(index int, err error) {
	e.mu.Lock()
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(index, err)
	}
}

func (e *Events) close() { close(e.done) }
