package async

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// gate holds started tasks until release is called.
type gate struct {
	release chan struct{}
}

func newGate() *gate {
	return &gate{release: make(chan struct{})}
}

func (g *gate) task(fail func(i int) error) Task {
	return func(i int, done Done) {
		go func() {
			<-g.release
			done(fail(i))
		}()
	}
}

func noFailure(int) error { return nil }

func oddFailure(i int) error {
	if i%2 == 1 {
		return errors.New("odd")
	}
	return nil
}

func waitOrFail(t *testing.T, ev *Events) {
	t.Helper()
	select {
	case <-ev.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
	}
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{Parallel(), "parallel"},
		{Series(), "series"},
		{Limit(3), "limit(3)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	for _, s := range []Strategy{Parallel(), Series(), Limit(2)} {
		calls := 0
		var got Errors = Errors{0: errors.New("sentinel")}
		ev := s.Run(0, func(int, Done) {
			t.Errorf("%s: task must not run", s)
		}, func(errs Errors) {
			calls++
			got = errs
		})

		if calls != 1 {
			t.Errorf("%s: expected final callback once, got %d", s, calls)
		}
		if got != nil {
			t.Errorf("%s: expected nil errors, got %v", s, got)
		}
		select {
		case <-ev.Done():
		default:
			t.Errorf("%s: expected events to be done", s)
		}
	}
}

func TestLimitZeroRunsNothing(t *testing.T) {
	calls := 0
	var got Errors
	Limit(0).Run(5, func(int, Done) {
		t.Error("task must not run")
	}, func(errs Errors) {
		calls++
		got = errs
	})
	if calls != 1 || got != nil {
		t.Errorf("expected one call with nil errors, got %d call(s) with %v", calls, got)
	}
}

func TestParallelStartsEverythingAtOnce(t *testing.T) {
	g := newGate()
	var started atomic.Int32
	task := g.task(noFailure)

	ev := Parallel().Run(10, func(i int, done Done) {
		started.Add(1)
		task(i, done)
	}, nil)

	if got := started.Load(); got != 10 {
		t.Fatalf("expected 10 tasks started before any completed, got %d", got)
	}
	close(g.release)
	waitOrFail(t, ev)
}

func TestParallelCollectsFailuresByIndex(t *testing.T) {
	g := newGate()
	var got Errors
	ev := Parallel().Run(6, g.task(oddFailure), func(errs Errors) {
		got = errs
	})
	close(g.release)
	waitOrFail(t, ev)

	if got.Len() != 3 {
		t.Fatalf("expected 3 failures, got %d", got.Len())
	}
	want := []int{1, 3, 5}
	for i, idx := range got.Indices() {
		if idx != want[i] {
			t.Errorf("expected index %d at position %d, got %d", want[i], i, idx)
		}
	}
}

func TestSeriesRunsInOrderOneAtATime(t *testing.T) {
	var (
		mu       sync.Mutex
		order    []int
		inflight atomic.Int32
		maxSeen  atomic.Int32
	)
	ev := Series().Run(8, func(i int, done Done) {
		n := inflight.Add(1)
		if n > maxSeen.Load() {
			maxSeen.Store(n)
		}
		mu.Lock()
		order = append(order, i)
		mu.Unlock()
		go func() {
			time.Sleep(time.Millisecond)
			inflight.Add(-1)
			done(nil)
		}()
	}, nil)
	waitOrFail(t, ev)

	if got := maxSeen.Load(); got != 1 {
		t.Errorf("expected at most 1 in flight, got %d", got)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("expected index %d at position %d, got order %v", i, i, order)
		}
	}
}

func TestSeriesContinuesAfterFailure(t *testing.T) {
	var ran atomic.Int32
	var got Errors
	ev := Series().Run(4, func(i int, done Done) {
		ran.Add(1)
		go done(oddFailure(i))
	}, func(errs Errors) {
		got = errs
	})
	waitOrFail(t, ev)

	if ran.Load() != 4 {
		t.Errorf("expected every task to run, got %d", ran.Load())
	}
	if got.Len() != 2 || got.At(1) == nil || got.At(3) == nil {
		t.Errorf("expected failures at 1 and 3, got %v", got)
	}
}

func TestLimitBoundsInflight(t *testing.T) {
	const limit = 3
	var (
		inflight atomic.Int32
		mu       sync.Mutex
		maxSeen  int32
		order    []int
	)
	ev := Limit(limit).Run(20, func(i int, done Done) {
		n := inflight.Add(1)
		mu.Lock()
		if n > maxSeen {
			maxSeen = n
		}
		order = append(order, i)
		mu.Unlock()
		go func() {
			time.Sleep(time.Duration(i%4) * time.Millisecond)
			inflight.Add(-1)
			done(nil)
		}()
	}, nil)
	waitOrFail(t, ev)

	if maxSeen > limit {
		t.Errorf("expected at most %d in flight, got %d", limit, maxSeen)
	}
	if maxSeen < 2 {
		t.Errorf("expected concurrency to be used, max in flight was %d", maxSeen)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("expected start order to follow indices, got %v", order)
		}
	}
}

func TestLimitLargerThanInput(t *testing.T) {
	g := newGate()
	var started atomic.Int32
	task := g.task(noFailure)
	ev := Limit(100).Run(5, func(i int, done Done) {
		started.Add(1)
		task(i, done)
	}, nil)
	if started.Load() != 5 {
		t.Errorf("expected 5 started, got %d", started.Load())
	}
	close(g.release)
	waitOrFail(t, ev)
}

func TestSynchronousCompletionDoesNotGrowStack(t *testing.T) {
	const n = 200000
	for _, s := range []Strategy{Series(), Limit(4), Parallel()} {
		var ran int
		calls := 0
		s.Run(n, func(i int, done Done) {
			ran++
			done(nil)
		}, func(errs Errors) {
			calls++
			if errs != nil {
				t.Errorf("%s: expected no errors, got %d", s, errs.Len())
			}
		})
		if ran != n || calls != 1 {
			t.Errorf("%s: expected %d runs and one final call, got %d and %d", s, n, ran, calls)
		}
	}
}

func TestSecondCompletionPanics(t *testing.T) {
	var recovered any
	finals := 0
	Series().Run(1, func(i int, done Done) {
		done(nil)
		defer func() { recovered = recover() }()
		done(errors.New("again"))
	}, func(errs Errors) {
		finals++
		if errs != nil {
			t.Errorf("expected the violation to stay out of the accumulator, got %v", errs)
		}
	})

	if finals != 1 {
		t.Errorf("expected one final call, got %d", finals)
	}
	err, ok := recovered.(error)
	if !ok {
		t.Fatalf("expected an error panic value, got %T", recovered)
	}
	if !errors.Is(err, ErrCompletionSignaledTwice) {
		t.Errorf("expected ErrCompletionSignaledTwice, got %v", err)
	}
}

func TestEventsEmitEveryFailureBeforeDone(t *testing.T) {
	g := newGate()
	var (
		mu      sync.Mutex
		emitted []int
		final   atomic.Bool
		late    atomic.Bool
	)
	ev := Parallel().Run(10, g.task(oddFailure), func(Errors) {
		final.Store(true)
	})
	ev.OnError(func(i int, err error) {
		if final.Load() {
			late.Store(true)
		}
		mu.Lock()
		emitted = append(emitted, i)
		mu.Unlock()
	})
	close(g.release)
	ev.Wait()

	if late.Load() {
		t.Error("expected every emission before the final callback")
	}
	if len(emitted) != 5 {
		t.Errorf("expected 5 emissions, got %d", len(emitted))
	}
}

func TestEventsDoNotReplay(t *testing.T) {
	ev := Series().Run(2, func(i int, done Done) {
		done(errors.New("boom"))
	}, nil)

	called := false
	ev.OnError(func(int, error) { called = true })
	if called {
		t.Error("expected no replay of earlier failures")
	}
}

func TestStrategyIsReusableAcrossRuns(t *testing.T) {
	s := Limit(2)
	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got Errors
			ev := s.Run(6, func(i int, done Done) {
				go done(oddFailure(i))
			}, func(errs Errors) { got = errs })
			ev.Wait()
			if got.Len() != 3 {
				t.Errorf("expected 3 failures per run, got %d", got.Len())
			}
		}()
	}
	wg.Wait()
}

func TestErrorsHelpers(t *testing.T) {
	var none Errors
	if none.Err() != nil {
		t.Error("expected nil Err for empty accumulator")
	}

	sentinel := errors.New("sentinel")
	errs := Errors{4: errors.New("four"), 2: sentinel}
	if !errors.Is(errs.Err(), sentinel) {
		t.Error("expected errors.Is to reach an item failure")
	}
	idx := errs.Indices()
	if len(idx) != 2 || idx[0] != 2 || idx[1] != 4 {
		t.Errorf("expected [2 4], got %v", idx)
	}
	if got := errs.Error(); got != "async: 2 item(s) failed: [2] sentinel; [4] four" {
		t.Errorf("unexpected message %q", got)
	}
}
