package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/vk/dagjobs/internal/config"
	"github.com/vk/dagjobs/internal/ctxlog"
	"github.com/vk/dagjobs/internal/dag"
	"github.com/vk/dagjobs/internal/events"
	"github.com/vk/dagjobs/internal/job"
	"github.com/vk/dagjobs/internal/workexec"
)

// ErrRunHalted is returned by Launch when a job failed and the remaining jobs
// were not attempted. The returned error also unwraps to the *job.LaunchError
// naming the failed job.
var ErrRunHalted = errors.New("run halted")

// Result is the cached value of one completed job.
type Result struct {
	JobID uint64
	Value int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSink sets the sink that receives job progress notifications.
func WithSink(sink events.Sink) Option {
	return func(s *Scheduler) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithRunID tags every log line of the run with id.
func WithRunID(id string) Option {
	return func(s *Scheduler) {
		s.runID = id
	}
}

// Scheduler owns the jobs of one graph and runs them.
type Scheduler struct {
	graph *dag.Graph
	// arena holds exactly one job per id, indexed by graph slot.
	arena   []*job.Job
	entries []*job.Job

	exec  workexec.Executor
	sink  events.Sink
	runID string

	mu    sync.Mutex
	order []*job.Job
}

// New validates descriptors and materializes their jobs. Configuration and
// cycle errors are returned before any job has run.
func New(ctx context.Context, descriptors []config.JobDescriptor, exec workexec.Executor, opts ...Option) (*Scheduler, error) {
	if exec == nil {
		return nil, errors.New("scheduler requires a work executor")
	}

	s := &Scheduler{
		exec: exec,
		sink: events.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runID != "" {
		ctx = ctxlog.With(ctx, "run_id", s.runID)
	}
	logger := ctxlog.FromContext(ctx)

	g, err := dag.Build(ctx, descriptors)
	if err != nil {
		return nil, err
	}
	if err := g.CheckCycles(); err != nil {
		logger.Debug("Cycle check failed.", "error", err)
		return nil, err
	}
	logger.Debug("Cycle check passed.", "job_count", g.JobCount())

	s.graph = g
	s.materialize()
	return s, nil
}

func (s *Scheduler) materialize() {
	ids := s.graph.IDs()
	s.arena = make([]*job.Job, len(ids))
	for slot, id := range ids {
		s.arena[slot] = job.New(id, slot)
	}
	for _, j := range s.arena {
		prereqs, _ := s.graph.Prerequisites(j.ID())
		for _, pid := range prereqs {
			slot, _ := s.graph.Slot(pid)
			j.AddPrerequisite(s.arena[slot])
		}
	}
	for _, id := range s.graph.EntryIDs() {
		slot, _ := s.graph.Slot(id)
		s.entries = append(s.entries, s.arena[slot])
	}
}

// executionOrder returns the cached order, computing it on first use.
func (s *Scheduler) executionOrder() []*job.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		s.order = executionOrder(s.entries, len(s.arena))
	}
	return s.order
}

// Launch runs every job that has no cached result, prerequisites first. The
// first failure halts the run; no later job is attempted.
func (s *Scheduler) Launch(ctx context.Context) error {
	if s.runID != "" {
		ctx = ctxlog.With(ctx, "run_id", s.runID)
	}
	logger := ctxlog.FromContext(ctx)

	order := s.executionOrder()
	logger.Info("🚀 Starting jobs run...", "job_count", len(order))

	for i, j := range order {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run cancelled.", "launched", i, "job_count", len(order))
			return fmt.Errorf("%w: %w", ErrRunHalted, err)
		}
		if err := j.Launch(ctx, s.exec, s.sink); err != nil {
			logger.Error("Run halted.", "job_id", j.ID(), "error", err)
			return fmt.Errorf("%w: %w", ErrRunHalted, err)
		}
	}

	logger.Info("🏁 Jobs run finished.")
	return nil
}

// Order returns the execution order as job ids.
func (s *Scheduler) Order() []uint64 {
	order := s.executionOrder()
	ids := make([]uint64, len(order))
	for i, j := range order {
		ids[i] = j.ID()
	}
	return ids
}

// Results walks the graph breadth-first from the entry jobs and returns the
// value of every job that has completed.
func (s *Scheduler) Results() []Result {
	var results []Result
	breadthFirst(s.entries, len(s.arena), func(j *job.Job) {
		if v, ok := j.Result(); ok {
			results = append(results, Result{JobID: j.ID(), Value: v})
		}
	})
	return results
}

// PrintResults writes one "Job <id>, result: <value>" line per completed job.
func (s *Scheduler) PrintResults(w io.Writer) error {
	for _, r := range s.Results() {
		if _, err := fmt.Fprintf(w, "Job %d, result: %d\n", r.JobID, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) JobCount() int { return len(s.arena) }

func (s *Scheduler) EntryIDs() []uint64 { return s.graph.EntryIDs() }

func (s *Scheduler) RunID() string { return s.runID }

// Job returns the job with the given id.
func (s *Scheduler) Job(id uint64) (*job.Job, bool) {
	slot, ok := s.graph.Slot(id)
	if !ok {
		return nil, false
	}
	return s.arena[slot], true
}
