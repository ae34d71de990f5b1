package async

import "sync/atomic"

// Filter keeps the elements whose verdict was true, in input order.
func Filter[T any](s Strategy, items []T, it func(T, Verdict), cb func([]T)) {
	sift(s, items, it, true, cb)
}

// FilterSeries is Filter under Series.
func FilterSeries[T any](items []T, it func(T, Verdict), cb func([]T)) {
	sift(Series(), items, it, true, cb)
}

// Reject keeps the elements whose verdict was false, in input order.
func Reject[T any](s Strategy, items []T, it func(T, Verdict), cb func([]T)) {
	sift(s, items, it, false, cb)
}

// RejectSeries is Reject under Series.
func RejectSeries[T any](items []T, it func(T, Verdict), cb func([]T)) {
	sift(Series(), items, it, false, cb)
}

func sift[T any](s Strategy, items []T, it func(T, Verdict), want bool, cb func([]T)) {
	keep := make([]bool, len(items))
	s.Run(len(items), func(i int, done Done) {
		it(items[i], func(ok bool) {
			keep[i] = ok == want
			done(nil)
		})
	}, func(Errors) {
		if cb == nil {
			return
		}
		out := make([]T, 0, len(items))
		for i, k := range keep {
			if k {
				out = append(out, items[i])
			}
		}
		cb(out)
	})
}

// latch fires once; every later trip reports false.
type latch struct{ tripped atomic.Bool }

func (l *latch) trip() bool { return l.tripped.CompareAndSwap(false, true) }

// Detect calls cb with the first element whose verdict is true, as soon as
// that verdict arrives, and ignores later matches. Elements already started
// keep running. When nothing matches, cb receives found == false after the
// whole run completed.
func Detect[T any](s Strategy, items []T, it func(T, Verdict), cb func(item T, found bool)) {
	var l latch
	s.Run(len(items), func(i int, done Done) {
		item := items[i]
		it(item, func(ok bool) {
			if ok && l.trip() && cb != nil {
				cb(item, true)
			}
			done(nil)
		})
	}, func(Errors) {
		if l.trip() && cb != nil {
			var zero T
			cb(zero, false)
		}
	})
}

// DetectSeries is Detect under Series: the match reported is the first in
// input order.
func DetectSeries[T any](items []T, it func(T, Verdict), cb func(item T, found bool)) {
	Detect(Series(), items, it, cb)
}

// Some reports true as soon as any verdict is true, or false once every
// element reported false. All elements run in parallel.
func Some[T any](items []T, it func(T, Verdict), cb func(bool)) {
	shortCircuit(items, it, true, cb)
}

// Every reports false as soon as any verdict is false, or true once every
// element reported true. All elements run in parallel.
func Every[T any](items []T, it func(T, Verdict), cb func(bool)) {
	shortCircuit(items, it, false, cb)
}

func shortCircuit[T any](items []T, it func(T, Verdict), on bool, cb func(bool)) {
	var l latch
	Parallel().Run(len(items), func(i int, done Done) {
		it(items[i], func(ok bool) {
			if ok == on && l.trip() && cb != nil {
				cb(on)
			}
			done(nil)
		})
	}, func(Errors) {
		if l.trip() && cb != nil {
			cb(!on)
		}
	})
}
