// Package async drives a callback-style operation over every element of a
// fixed collection.
//
// Three interchangeable strategies schedule the work:
//
//   - Parallel: start every element at once
//   - Series: start element i+1 only after element i completed
//   - Limit(n): keep at most n elements in flight, started in index order
//
// Every combinator (Map, Reduce, Filter, Detect, Some, Every, SortBy, Concat)
// decorates the caller's iterator, hands it to one of these strategies and
// post-processes the collected per-item values. None schedules on its own.
//
// # Completion contract
//
// An iterator receives one element and a completion signal. It must call the
// signal exactly once, optionally with an error. A second call panics with an
// error matching ErrCompletionSignaledTwice; zero calls stall the run forever.
// The engine runs the iterator on the goroutine that started it, so iterators
// that block should offload their work, for example through Go or GoWith.
//
// Failures never stop a run. The final callback fires once, after every
// element completed, with an Errors value keyed by element index, or nil when
// nothing failed. Each failure is also emitted on the returned Events as it
// happens.
//
// # Usage
//
//	async.EachLimit(urls, 4, func(u string, done async.Done) {
//	    go func() { done(fetch(u)) }()
//	}, func(errs async.Errors) {
//	    for _, i := range errs.Indices() {
//	        log.Printf("%s: %v", urls[i], errs[i])
//	    }
//	}).OnError(func(i int, err error) {
//	    metrics.Inc("fetch.failed")
//	})
//
// No operation can be cancelled or timed out; Detect, Some and Every deliver
// their answer early but keep waiting on everything already started.
package async
