package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/vk/dagjobs/internal/ctxlog"
	"github.com/vk/dagjobs/internal/events"
	"github.com/vk/dagjobs/internal/workexec"
)

// ErrNoResult is returned when a result is requested from a job that has not
// completed.
var ErrNoResult = errors.New("job has no result")

// State represents the execution state of a job.
type State int32

const (
	// Pending indicates the job has not been launched yet.
	Pending State = iota
	// Running indicates the job is waiting on its work executor.
	Running
	// Done indicates the job has cached its result.
	Done
	// Failed indicates the work executor returned an error. A failed job may be
	// launched again.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Job is a single vertex of the jobs graph.
type Job struct {
	id   uint64
	slot int
	// prerequisites are held in declaration order and may repeat.
	prerequisites []*Job

	launchMu sync.Mutex
	mu       sync.Mutex
	state    State
	result   int
}

// New creates a pending job with the given id and dense slot.
func New(id uint64, slot int) *Job {
	return &Job{id: id, slot: slot}
}

func (j *Job) ID() uint64 { return j.id }

func (j *Job) Slot() int { return j.slot }

// Prerequisites returns a copy of the job's prerequisite list.
func (j *Job) Prerequisites() []*Job {
	return append([]*Job(nil), j.prerequisites...)
}

// AddPrerequisite appends p to the prerequisite list. It must only be called
// while the graph is being materialized.
func (j *Job) AddPrerequisite(p *Job) {
	j.prerequisites = append(j.prerequisites, p)
}

// State returns the job's current execution state.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Result returns the cached result and whether the job has completed.
func (j *Job) Result() (int, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.state == Done
}

func (j *Job) String() string {
	return fmt.Sprintf("job %d", j.id)
}

// Launch runs the job if it has not completed yet. Prerequisites that have not
// completed are launched before the work executor is called, so Launch is
// correct regardless of the order in which jobs are visited. The result is the
// executor's base value plus the result of every prerequisite, counted once
// per declaration.
//
// The job is reported as launched only once all of its prerequisites have
// results. A nil sink is treated as events.Nop.
func (j *Job) Launch(ctx context.Context, exec workexec.Executor, sink events.Sink) error {
	if sink == nil {
		sink = events.Nop{}
	}

	// launchMu serializes launches of this job; mu only guards state and
	// result, so readers never wait on the work executor.
	j.launchMu.Lock()
	defer j.launchMu.Unlock()

	if j.State() == Done {
		return nil
	}

	logger := ctxlog.FromContext(ctx).With("job_id", j.id)
	if !j.prerequisitesDone() {
		logger.Debug("Launching unfinished prerequisites first.")
		for _, p := range j.prerequisites {
			if err := p.Launch(ctx, exec, sink); err != nil {
				return err
			}
		}
	}

	j.setState(Running)
	sink.JobLaunched(ctx, j.id)

	base, err := exec.Execute(ctx, j.id)
	if err != nil {
		j.setState(Failed)
		sink.JobFailed(ctx, j.id, err)
		return &LaunchError{JobID: j.id, Err: err}
	}
	sink.JobGenerated(ctx, j.id, base)

	sum := base
	for _, p := range j.prerequisites {
		r, _ := p.Result()
		sum += r
	}

	j.mu.Lock()
	j.result = sum
	j.state = Done
	j.mu.Unlock()

	logger.Debug("Job result cached.", "base", base, "result", sum)
	sink.JobCompleted(ctx, j.id, sum)
	return nil
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = s
}

func (j *Job) prerequisitesDone() bool {
	for _, p := range j.prerequisites {
		if _, ok := p.Result(); !ok {
			return false
		}
	}
	return true
}

// PrintResult writes "Job <id>, result: <value>" to w.
func (j *Job) PrintResult(w io.Writer) error {
	r, ok := j.Result()
	if !ok {
		return fmt.Errorf("%s: %w", j, ErrNoResult)
	}
	_, err := fmt.Fprintf(w, "Job %d, result: %d", j.id, r)
	return err
}

// LaunchError reports the job whose work executor failed.
type LaunchError struct {
	JobID uint64
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("job %d crashed: %v", e.JobID, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
