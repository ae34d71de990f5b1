package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kbukum/asynckit/async"
	"github.com/kbukum/asynckit/bootstrap"
	"github.com/kbukum/asynckit/config"
)

// job is one simulated unit of work.
type job struct {
	ID    int
	Delay time.Duration
}

// newJobs builds the workload: IDs 1..Items with a random delay each.
func newJobs(wc config.WorkloadConfig, rng *rand.Rand) []job {
	jobs := make([]job, wc.Items)
	for i := range jobs {
		var d time.Duration
		if wc.MaxDelay > 0 {
			d = time.Duration(rng.Int64N(int64(wc.MaxDelay)))
		}
		jobs[i] = job{ID: i + 1, Delay: d}
	}
	return jobs
}

// simulate sleeps for the job's delay and fails every FailEvery-th job.
func simulate(wc config.WorkloadConfig) func(job) error {
	return func(j job) error {
		time.Sleep(j.Delay)
		if wc.FailEvery > 0 && j.ID%wc.FailEvery == 0 {
			return fmt.Errorf("job %d: simulated failure", j.ID)
		}
		return nil
	}
}

// runWorkload drives the workload through the configured strategy and every
// combinator, recording one summary step per run.
func runWorkload(ctx context.Context, app *bootstrap.App) error {
	wc := app.Cfg.Workload
	jobs := newJobs(wc, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
	s := app.Strategy
	work := simulate(wc)
	log := app.Logger.WithComponent("workload")

	steps := []struct {
		name string
		run  func() (async.Errors, error)
	}{
		{"each", func() (async.Errors, error) {
			var out async.Errors
			async.EachWith(s, jobs, async.Go(work), func(errs async.Errors) { out = errs }).
				OnError(func(i int, err error) {
					log.Debug("job failed", map[string]interface{}{"index": i, "error": err.Error()})
				}).
				Wait()
			return out, nil
		}},
		{"map", func() (async.Errors, error) {
			var out async.Errors
			async.Map(s, jobs, async.GoWith(func(j job) (int, error) {
				return j.ID * j.ID, work(j)
			}), func(_ []int, errs async.Errors) { out = errs }).Wait()
			return out, nil
		}},
		{"sort_by", func() (async.Errors, error) {
			var out async.Errors
			var sorted []job
			async.SortBy(s, jobs, async.GoWith(func(j job) (time.Duration, error) {
				return j.Delay, nil
			}), func(res []job, errs async.Errors) { sorted, out = res, errs }).Wait()
			if len(sorted) > 0 {
				log.Info("fastest job", map[string]interface{}{"id": sorted[0].ID})
			}
			return out, nil
		}},
		{"concat", func() (async.Errors, error) {
			var out async.Errors
			var ids []int
			async.Concat(s, jobs, async.GoWith(func(j job) ([]int, error) {
				return []int{j.ID, -j.ID}, work(j)
			}), func(res []int, errs async.Errors) { ids, out = res, errs }).Wait()
			log.Info("concat", map[string]interface{}{"values": len(ids)})
			return out, nil
		}},
		{"reduce", func() (async.Errors, error) {
			var out async.Errors
			var total int
			async.Reduce(jobs, 0, func(sum int, j job, done async.DoneWith[int]) {
				go func() { done(sum+j.ID, work(j)) }()
			}, func(sum int, errs async.Errors) { total, out = sum, errs }).Wait()
			log.Info("reduce", map[string]interface{}{"total": total})
			return out, nil
		}},
		{"filter", func() (async.Errors, error) {
			kept := make(chan []job, 1)
			async.Filter(s, jobs, async.GoVerdict(func(j job) bool {
				return work(j) == nil
			}), func(res []job) { kept <- res })
			select {
			case res := <-kept:
				log.Info("filter", map[string]interface{}{"kept": len(res)})
				return nil, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}},
		{"detect", func() (async.Errors, error) {
			found := make(chan job, 1)
			async.Detect(s, jobs, async.GoVerdict(func(j job) bool {
				return work(j) != nil
			}), func(j job, ok bool) {
				if !ok {
					j = job{}
				}
				found <- j
			})
			select {
			case j := <-found:
				log.Info("first failing job", map[string]interface{}{"id": j.ID})
				return nil, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}},
		{"every", func() (async.Errors, error) {
			verdict := make(chan bool, 1)
			async.Every(jobs, async.GoVerdict(func(j job) bool {
				return work(j) == nil
			}), func(ok bool) { verdict <- ok })
			select {
			case ok := <-verdict:
				log.Info("every job succeeds", map[string]interface{}{"result": ok})
				return nil, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		errs, err := st.run()
		if err != nil {
			return err
		}
		app.Summary.TrackErrors(st.name, s, len(jobs), errs, time.Since(start))
	}
	return nil
}
