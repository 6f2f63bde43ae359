package events

import "context"

// Sink receives job progress notifications. Implementations must not block
// for long; the scheduler calls them inline.
type Sink interface {
	JobLaunched(ctx context.Context, jobID uint64)
	JobGenerated(ctx context.Context, jobID uint64, base int)
	JobCompleted(ctx context.Context, jobID uint64, result int)
	JobFailed(ctx context.Context, jobID uint64, err error)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) JobLaunched(context.Context, uint64) {}
func (Nop) JobGenerated(context.Context, uint64, int) {}
func (Nop) JobCompleted(context.Context, uint64, int) {}
func (Nop) JobFailed(context.Context, uint64, error) {}

// Multi fans every notification out to each sink in order.
type Multi []Sink

func (m Multi) JobLaunched(ctx context.Context, jobID uint64) {
	for _, s := range m {
		s.JobLaunched(ctx, jobID)
	}
}

func (m Multi) JobGenerated(ctx context.Context, jobID uint64, base int) {
	for _, s := range m {
		s.JobGenerated(ctx, jobID, base)
	}
}

func (m Multi) JobCompleted(ctx context.Context, jobID uint64, result int) {
	for _, s := range m {
		s.JobCompleted(ctx, jobID, result)
	}
}

func (m Multi) JobFailed(ctx context.Context, jobID uint64, err error) {
	for _, s := range m {
		s.JobFailed(ctx, jobID, err)
	}
}
