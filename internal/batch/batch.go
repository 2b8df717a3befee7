// Package batch runs many independent render jobs concurrently, grounded
// on golang.org/x/sync/errgroup's bounded-concurrency idiom (the same
// package gonoto's font generator uses for its own parallel zip-entry
// decoding, github.com/gonoto/gonoto's main.go). Jobs share nothing but
// the Backend's font cache; results are collected into the caller's
// original ordering regardless of completion order.
package batch

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fontlaborg/o4e"
	"github.com/fontlaborg/o4e/internal/backend"
)

// State is a job's position in the Queued -> Running -> (Completed |
// Failed) state machine spec.md §4.9 describes, with the optional
// Cancelled transition from Queued or Running.
type State int

const (
	Queued State = iota
	Running
	Completed
	Failed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Queued"
	}
}

// Job is one independent unit of work: shape Run's slice of Text against
// its bound font (or Font, if Run carries none) and render the result.
type Job struct {
	ID            string
	Text          string
	Run           o4e.TextRun
	Font          o4e.Font
	RenderOptions o4e.RenderOptions
}

// Result is the outcome of one Job, always present in RenderBatch's output
// slice at the same index its Job occupied in the input, regardless of
// which job actually finished first.
type Result struct {
	JobID    string
	State    State
	Output   o4e.RenderOutput
	Err      error
	Duration time.Duration
}

// Summary aggregates a batch's outcome: counts plus p50/p90/p99 latency
// over every job that completed or failed. Cancelled jobs count toward
// Total only.
type Summary struct {
	Total, Completed, Failed int
	P50, P90, P99            time.Duration
}

// DefaultConcurrency is used when RenderBatch/RenderStreaming are called
// with concurrency <= 0: the host's available parallelism, matching
// spec.md §4.9's "defaults to the host's parallelism."
func DefaultConcurrency() int {
	return maxInt(1, runtime.NumCPU())
}

// RenderBatch implements spec.md §4.9: render_batch(jobs, concurrency?) ->
// ordered results. Every job runs independently; a failure in one job
// never aborts the others. Results preserve jobs' input order.
func RenderBatch(ctx context.Context, be backend.Backend, jobs []Job, concurrency int) ([]Result, Summary) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency()
	}
	results := make([]Result, len(jobs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			results[i] = runJob(egCtx, be, job)
			return nil
		})
	}
	_ = eg.Wait() // runJob never returns an error itself; per-job failures live in Result

	return results, summarize(results)
}

// StreamResult tags a Result with its originating job so callers consuming
// RenderStreaming's channel can reassemble order themselves.
type StreamResult = Result

// RenderStreaming implements spec.md §4.9's streaming variant: results are
// sent as soon as each job completes, not in input order. The returned
// channel is closed after every job finishes (or the context is
// cancelled). It is buffered to hold every result, so workers never block
// on it.
func RenderStreaming(ctx context.Context, be backend.Backend, jobs []Job, concurrency int) <-chan StreamResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency()
	}
	out := make(chan StreamResult, len(jobs))

	go func() {
		defer close(out)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(concurrency)
		for _, job := range jobs {
			job := job
			eg.Go(func() error {
				out <- runJob(egCtx, be, job)
				return nil
			})
		}
		_ = eg.Wait()
	}()

	return out
}

func runJob(ctx context.Context, be backend.Backend, job Job) Result {
	start := time.Now()

	select {
	case <-ctx.Done():
		return Result{JobID: job.ID, State: Cancelled, Err: ctx.Err(), Duration: time.Since(start)}
	default:
	}

	run := job.Run
	if run.Font == nil {
		f := job.Font
		run.Font = &f
	}

	result, err := be.Shape(run, job.Text)
	if err != nil {
		return Result{JobID: job.ID, State: Failed, Err: err, Duration: time.Since(start)}
	}

	output, err := be.Render(result, job.RenderOptions)
	if err != nil {
		return Result{JobID: job.ID, State: Failed, Err: err, Duration: time.Since(start)}
	}

	return Result{JobID: job.ID, State: Completed, Output: output, Duration: time.Since(start)}
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	durations := make([]time.Duration, 0, len(results))
	for _, r := range results {
		switch r.State {
		case Completed:
			s.Completed++
			durations = append(durations, r.Duration)
		case Failed:
			s.Failed++
			durations = append(durations, r.Duration)
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	s.P50 = percentile(durations, 0.50)
	s.P90 = percentile(durations, 0.90)
	s.P99 = percentile(durations, 0.99)
	return s
}

// percentile returns the nearest-rank percentile p (0-1) of sorted, a
// slice already ordered ascending.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(p*float64(len(sorted)-1) + 0.5)
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
