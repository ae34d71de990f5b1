package async

import (
	"cmp"
	"slices"
)

// Map runs it over items under s and delivers the results in input order,
// whatever order the elements completed in. The slot of a failed element
// holds whatever result its iterator passed alongside the error.
//
// The run happens even when cb is nil.
func Map[T, R any](s Strategy, items []T, it func(T, DoneWith[R]), cb func([]R, Errors)) *Events {
	results := make([]R, len(items))
	return s.Run(len(items), func(i int, done Done) {
		it(items[i], func(r R, err error) {
			results[i] = r
			done(err)
		})
	}, func(errs Errors) {
		if cb != nil {
			cb(results, errs)
		}
	})
}

// MapSeries is Map under Series.
func MapSeries[T, R any](items []T, it func(T, DoneWith[R]), cb func([]R, Errors)) *Events {
	return Map(Series(), items, it, cb)
}

// MapLimit is Map under Limit(limit).
func MapLimit[T, R any](items []T, limit int, it func(T, DoneWith[R]), cb func([]R, Errors)) *Events {
	return Map(Limit(limit), items, it, cb)
}

// Reduce folds items left to right, one element at a time. Each step receives
// the accumulator produced by the previous step's completion signal and
// replaces it with its own. A failed step still hands its result on, and the
// fold continues.
func Reduce[T, A any](items []T, memo A, it func(A, T, DoneWith[A]), cb func(A, Errors)) *Events {
	return Series().Run(len(items), func(i int, done Done) {
		it(memo, items[i], func(next A, err error) {
			memo = next
			done(err)
		})
	}, func(errs Errors) {
		if cb != nil {
			cb(memo, errs)
		}
	})
}

// ReduceRight folds items right to left. Error indices refer to positions in
// the reversed order. items itself is left untouched.
func ReduceRight[T, A any](items []T, memo A, it func(A, T, DoneWith[A]), cb func(A, Errors)) *Events {
	reversed := slices.Clone(items)
	slices.Reverse(reversed)
	return Reduce(reversed, memo, it, cb)
}

// SortBy computes a sort key per element under s, then delivers the elements
// ordered by ascending key. Elements with equal keys keep their input order.
// If any key computation failed, cb receives the failures and a nil slice.
func SortBy[T any, K cmp.Ordered](s Strategy, items []T, it func(T, DoneWith[K]), cb func([]T, Errors)) *Events {
	return Map(s, items, it, func(keys []K, errs Errors) {
		if cb == nil {
			return
		}
		if errs != nil {
			cb(nil, errs)
			return
		}
		order := make([]int, len(items))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int {
			return compareKeys(keys[a], keys[b])
		})
		sorted := make([]T, len(items))
		for i, idx := range order {
			sorted[i] = items[idx]
		}
		cb(sorted, nil)
	})
}

func compareKeys[K cmp.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Concat runs it under s and joins the returned sub-slices in input order.
// Failed elements contribute nothing.
func Concat[T, R any](s Strategy, items []T, it func(T, DoneWith[[]R]), cb func([]R, Errors)) *Events {
	return Map(s, items, it, func(parts [][]R, errs Errors) {
		if cb == nil {
			return
		}
		out := make([]R, 0)
		for i, part := range parts {
			if errs.At(i) != nil {
				continue
			}
			out = append(out, part...)
		}
		cb(out, errs)
	})
}

// ConcatSeries is Concat under Series.
func ConcatSeries[T, R any](items []T, it func(T, DoneWith[[]R]), cb func([]R, Errors)) *Events {
	return Concat(Series(), items, it, cb)
}
