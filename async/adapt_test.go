package async

import (
	"errors"
	"testing"

	apperrors "github.com/kbukum/asynckit/errors"
)

func TestGoConvertsPanicToFailure(t *testing.T) {
	var got Errors
	ev := Each([]int{1, 2, 3}, Go(func(n int) error {
		if n == 2 {
			panic("kaboom")
		}
		return nil
	}), func(errs Errors) { got = errs })
	waitOrFail(t, ev)

	if got.Len() != 1 {
		t.Fatalf("expected 1 failure, got %d", got.Len())
	}
	err := got.At(1)
	if !errors.Is(err, ErrIteratorPanic) {
		t.Errorf("expected ErrIteratorPanic, got %v", err)
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Cause == nil || appErr.Cause.Error() != "kaboom" {
		t.Errorf("expected panic value as cause, got %v", err)
	}
}

func TestGoRecordsErrorVerbatim(t *testing.T) {
	sentinel := errors.New("sentinel")
	var got Errors
	ev := EachLimit([]int{0}, 1, Go(func(int) error { return sentinel }), func(errs Errors) { got = errs })
	waitOrFail(t, ev)

	if got.At(0) != sentinel {
		t.Errorf("expected the iterator's own error, got %v", got.At(0))
	}
}

func TestGoWithPanicKeepsZeroResult(t *testing.T) {
	var out []string
	var got Errors
	ev := MapLimit([]int{1, 2}, 2, GoWith(func(n int) (string, error) {
		if n == 1 {
			panic(errors.New("bad"))
		}
		return "two", nil
	}), func(res []string, errs Errors) { out, got = res, errs })
	waitOrFail(t, ev)

	if out[0] != "" || out[1] != "two" {
		t.Errorf("unexpected results %q", out)
	}
	if !errors.Is(got.At(0), ErrIteratorPanic) {
		t.Errorf("expected ErrIteratorPanic at 0, got %v", got.At(0))
	}
}
