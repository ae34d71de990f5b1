package async

import "fmt"

// Go adapts a blocking function into an Iterator. Each call runs fn on its own
// goroutine; a panic inside fn becomes that element's failure, matching
// ErrIteratorPanic.
func Go[T any](fn func(T) error) Iterator[T] {
	return func(item T, done Done) {
		go func() {
			done(protect(func() error { return fn(item) }))
		}()
	}
}

// GoWith adapts a blocking function returning a value, for Map, SortBy and
// Concat.
func GoWith[T, R any](fn func(T) (R, error)) func(T, DoneWith[R]) {
	return func(item T, done DoneWith[R]) {
		go func() {
			var r R
			err := protect(func() error {
				var fnErr error
				r, fnErr = fn(item)
				return fnErr
			})
			done(r, err)
		}()
	}
}

// GoVerdict adapts a blocking predicate into a verdict iterator. Verdicts have
// no failure channel, so a panic inside fn is not recovered.
func GoVerdict[T any](fn func(T) bool) func(T, Verdict) {
	return func(item T, verdict Verdict) {
		go func() {
			verdict(fn(item))
		}()
	}
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrIteratorPanic.Clone().WithCause(fmt.Errorf("%v", r))
		}
	}()
	return fn()
}
