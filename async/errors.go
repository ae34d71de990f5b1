package async

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	apperrors "github.com/kbukum/asynckit/errors"
)

var (
	// ErrCompletionSignaledTwice is the panic value raised when an iterator
	// calls its completion signal a second time. Match it with errors.Is.
	ErrCompletionSignaledTwice = apperrors.New(apperrors.ErrCodeCompletionSignaledTwice, "completion signaled more than once")

	// ErrIteratorPanic wraps a panic recovered by the blocking adapters.
	ErrIteratorPanic = apperrors.New(apperrors.ErrCodeIteratorPanic, "iterator panicked")
)

// Errors maps element index to the failure its iterator reported. Indices of
// elements that succeeded are absent. A nil Errors means nothing failed.
type Errors map[int]error

// Len returns the number of failed elements.
func (e Errors) Len() int { return len(e) }

// At returns the failure recorded for index i, or nil.
func (e Errors) At(i int) error { return e[i] }

// Indices returns the failed indices in ascending order.
func (e Errors) Indices() []int {
	return slices.Sorted(maps.Keys(e))
}

// Err returns e as an error, or nil when no element failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Error implements error.
func (e Errors) Error() string {
	idx := e.Indices()
	parts := make([]string, 0, len(idx))
	for _, i := range idx {
		parts = append(parts, fmt.Sprintf("[%d] %v", i, e[i]))
	}
	return fmt.Sprintf("async: %d item(s) failed: %s", len(idx), strings.Join(parts, "; "))
}

// Unwrap exposes every failure, in index order, to errors.Is and errors.As.
func (e Errors) Unwrap() []error {
	idx := e.Indices()
	errs := make([]error, 0, len(idx))
	for _, i := range idx {
		errs = append(errs, e[i])
	}
	return errs
}

func (e Errors) record(i int, err error) Errors {
	if e == nil {
		e = make(Errors)
	}
	e[i] = err
	return e
}
