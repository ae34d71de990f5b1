package bootstrap

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/asynckit/async"
	"github.com/kbukum/asynckit/logger"
)

// StepResult is the outcome of one named run of a task.
type StepResult struct {
	Name     string
	Strategy string
	Items    int
	Failed   int
	Duration time.Duration
}

// Summary collects step results while a task runs and displays them at the
// end.
type Summary struct {
	serviceName string
	version     string
	started     time.Time

	mu    sync.Mutex
	steps []StepResult
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		started:     time.Now(),
		steps:       make([]StepResult, 0),
	}
}

// Track records a step.
func (s *Summary) Track(r StepResult) {
	s.mu.Lock()
	s.steps = append(s.steps, r)
	s.mu.Unlock()
}

// TrackErrors records a step from the accumulated failures of a run.
func (s *Summary) TrackErrors(name string, strategy async.Strategy, items int, errs async.Errors, d time.Duration) {
	s.Track(StepResult{
		Name:     name,
		Strategy: strategy.String(),
		Items:    items,
		Failed:   errs.Len(),
		Duration: d,
	})
}

// Steps returns a copy of the recorded steps.
func (s *Summary) Steps() []StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StepResult, len(s.steps))
	copy(out, s.steps)
	return out
}

// Render formats the summary as a tree.
func (s *Summary) Render() string {
	steps := s.Steps()

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s v%s finished in %.2fs\n\n", s.serviceName, s.version, time.Since(s.started).Seconds())
	if len(steps) == 0 {
		b.WriteString("   └── No steps recorded\n")
		return b.String()
	}

	failedSteps := 0
	for i, st := range steps {
		prefix := "├──"
		if i == len(steps)-1 {
			prefix = "└──"
		}
		icon := "✅"
		if st.Failed > 0 {
			icon = "⚠️"
			failedSteps++
		}
		fmt.Fprintf(&b, "   %s %s %-14s %-10s %d/%d ok (%s)\n",
			prefix, icon, st.Name, st.Strategy, st.Items-st.Failed, st.Items, st.Duration.Round(time.Millisecond))
	}
	b.WriteString("\n")
	if failedSteps == 0 {
		fmt.Fprintf(&b, "All steps succeeded (%d)\n", len(steps))
	} else {
		fmt.Fprintf(&b, "%d of %d steps had failures\n", failedSteps, len(steps))
	}
	return b.String()
}

// Display prints the rendered summary and logs its totals.
func (s *Summary) Display(log *logger.Logger) {
	fmt.Print(s.Render())

	steps := s.Steps()
	failed := 0
	for _, st := range steps {
		failed += st.Failed
	}
	log.Info("Task summary", map[string]interface{}{
		"steps":  len(steps),
		"failed": failed,
	})
}
