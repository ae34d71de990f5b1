package async

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func isOdd(n int) bool { return n%2 == 1 }

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not called")
	}
	var zero T
	return zero
}

func TestFilterKeepsInputOrder(t *testing.T) {
	items := []int{3, 1, 2}
	ch := make(chan []int, 1)
	Filter(Parallel(), items, func(n int, v Verdict) {
		go func() {
			time.Sleep(time.Duration(n) * time.Millisecond)
			v(isOdd(n))
		}()
	}, func(out []int) { ch <- out })

	got := receive(t, ch)
	if !slices.Equal(got, []int{3, 1}) {
		t.Errorf("expected [3 1], got %v", got)
	}
	if !slices.Equal(items, []int{3, 1, 2}) {
		t.Errorf("expected input untouched, got %v", items)
	}
}

func TestRejectKeepsComplement(t *testing.T) {
	ch := make(chan []int, 1)
	RejectSeries([]int{3, 1, 2, 4}, GoVerdict(isOdd), func(out []int) { ch <- out })

	got := receive(t, ch)
	if !slices.Equal(got, []int{2, 4}) {
		t.Errorf("expected [2 4], got %v", got)
	}
}

func TestFilterSeriesNoMatches(t *testing.T) {
	ch := make(chan []int, 1)
	FilterSeries([]int{2, 4}, GoVerdict(isOdd), func(out []int) { ch <- out })

	got := receive(t, ch)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestReject(t *testing.T) {
	ch := make(chan []int, 1)
	Reject(Limit(2), []int{1, 2, 3, 4, 5}, GoVerdict(isOdd), func(out []int) { ch <- out })
	if got := receive(t, ch); !slices.Equal(got, []int{2, 4}) {
		t.Errorf("expected [2 4], got %v", got)
	}
}

func TestDetectFiresOnceWithoutCancelling(t *testing.T) {
	var (
		wg        sync.WaitGroup
		calls     atomic.Int32
		completed atomic.Int32
		found     int
	)
	items := []int{3, 2, 1}
	wg.Add(len(items))
	Detect(Parallel(), items, func(n int, v Verdict) {
		go func() {
			defer wg.Done()
			time.Sleep(time.Duration(n) * time.Millisecond)
			v(n%2 == 0)
			completed.Add(1)
		}()
	}, func(item int, ok bool) {
		calls.Add(1)
		if !ok {
			t.Error("expected a match")
		}
		found = item
	})
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected callback once, got %d", calls.Load())
	}
	if found != 2 {
		t.Errorf("expected 2, got %d", found)
	}
	if completed.Load() != 3 {
		t.Errorf("expected every element to finish, got %d", completed.Load())
	}
}

func TestDetectSeriesReportsFirstInOrder(t *testing.T) {
	type result struct {
		item  int
		found bool
	}
	ch := make(chan result, 2)
	DetectSeries([]int{2, 3, 5, 6}, func(n int, v Verdict) {
		go v(isOdd(n))
	}, func(item int, found bool) { ch <- result{item, found} })

	got := receive(t, ch)
	if !got.found || got.item != 3 {
		t.Errorf("expected 3 found, got %+v", got)
	}
}

func TestDetectNoMatch(t *testing.T) {
	var item int
	var found = true
	calls := 0
	Detect(Series(), []int{2, 4}, func(n int, v Verdict) { v(isOdd(n)) }, func(i int, ok bool) {
		calls++
		item, found = i, ok
	})
	if calls != 1 || found || item != 0 {
		t.Errorf("expected one call with (0, false), got %d call(s) with (%d, %v)", calls, item, found)
	}
}

func TestSomeAndEvery(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		some  bool
		every bool
	}{
		{"empty", nil, false, true},
		{"all odd", []int{1, 3, 5}, true, true},
		{"mixed", []int{1, 2, 3}, true, false},
		{"none odd", []int{2, 4}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			someCh := make(chan bool, 2)
			everyCh := make(chan bool, 2)
			Some(tt.items, GoVerdict(isOdd), func(ok bool) { someCh <- ok })
			Every(tt.items, GoVerdict(isOdd), func(ok bool) { everyCh <- ok })

			if got := receive(t, someCh); got != tt.some {
				t.Errorf("some: expected %v, got %v", tt.some, got)
			}
			if got := receive(t, everyCh); got != tt.every {
				t.Errorf("every: expected %v, got %v", tt.every, got)
			}
		})
	}
}

func TestSomeFiresOnce(t *testing.T) {
	var wg sync.WaitGroup
	var calls atomic.Int32
	items := []int{1, 3, 5, 7}
	wg.Add(len(items))
	Some(items, func(n int, v Verdict) {
		go func() {
			defer wg.Done()
			v(true)
		}()
	}, func(bool) { calls.Add(1) })
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected callback once, got %d", calls.Load())
	}
}
