package workexec

import "context"

// Executor computes the intrinsic base value of a job. Implementations may
// fail; a failure halts the scheduled run.
type Executor interface {
	Execute(ctx context.Context, jobID uint64) (int, error)
}

// Func adapts an ordinary function to the Executor interface.
type Func func(ctx context.Context, jobID uint64) (int, error)

// Execute calls f(ctx, jobID).
func (f Func) Execute(ctx context.Context, jobID uint64) (int, error) {
	return f(ctx, jobID)
}
