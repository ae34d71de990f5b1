package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/kbukum/asynckit/async"
	"github.com/kbukum/asynckit/bootstrap"
	"github.com/kbukum/asynckit/config"
	"github.com/kbukum/asynckit/logger"
)

func TestNewJobs(t *testing.T) {
	wc := config.WorkloadConfig{Items: 5, MaxDelay: 10 * time.Millisecond}
	jobs := newJobs(wc, rand.New(rand.NewPCG(1, 2)))

	if len(jobs) != 5 {
		t.Fatalf("expected 5 jobs, got %d", len(jobs))
	}
	for i, j := range jobs {
		if j.ID != i+1 {
			t.Errorf("expected ID %d, got %d", i+1, j.ID)
		}
		if j.Delay < 0 || j.Delay >= wc.MaxDelay {
			t.Errorf("delay %v out of range", j.Delay)
		}
	}
}

func TestSimulateFailsEveryNth(t *testing.T) {
	work := simulate(config.WorkloadConfig{FailEvery: 3})
	for id := 1; id <= 6; id++ {
		err := work(job{ID: id})
		if (id%3 == 0) != (err != nil) {
			t.Errorf("job %d: unexpected result %v", id, err)
		}
	}
	if err := simulate(config.WorkloadConfig{})(job{ID: 3}); err != nil {
		t.Errorf("expected no failures without fail_every, got %v", err)
	}
}

func TestRunWorkload(t *testing.T) {
	cfg := &config.Config{
		Name:     serviceName,
		Strategy: async.StrategyConfig{Mode: async.ModeLimit, Limit: 3},
		Workload: config.WorkloadConfig{Items: 9, MaxDelay: time.Millisecond, FailEvery: 4},
	}
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "test", &buf)

	app, err := bootstrap.NewApp(cfg, bootstrap.WithLogger(log))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if err := app.RunTask(context.Background(), runWorkload); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	failures := map[string]int{}
	for _, st := range app.Summary.Steps() {
		failures[st.Name] = st.Failed
		if st.Items != 9 {
			t.Errorf("%s: expected 9 items, got %d", st.Name, st.Items)
		}
	}
	if len(failures) != 8 {
		t.Fatalf("expected 8 steps, got %d", len(failures))
	}
	for _, name := range []string{"each", "map", "concat", "reduce"} {
		if failures[name] != 2 {
			t.Errorf("%s: expected 2 failures, got %d", name, failures[name])
		}
	}
	if failures["sort_by"] != 0 {
		t.Errorf("sort_by: expected no failures, got %d", failures["sort_by"])
	}
}
