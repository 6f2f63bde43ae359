package events

import (
	"context"

	"github.com/vk/dagjobs/internal/ctxlog"
)

// Log writes notifications to the logger carried by the context.
type Log struct{}

func (Log) JobLaunched(ctx context.Context, jobID uint64) {
	ctxlog.FromContext(ctx).Debug("Job launched.", "job_id", jobID)
}

func (Log) JobGenerated(ctx context.Context, jobID uint64, base int) {
	ctxlog.FromContext(ctx).Debug("Job generated base value.", "job_id", jobID, "base", base)
}

func (Log) JobCompleted(ctx context.Context, jobID uint64, result int) {
	ctxlog.FromContext(ctx).Info("✅ Job finished", "job_id", jobID, "result", result)
}

func (Log) JobFailed(ctx context.Context, jobID uint64, err error) {
	ctxlog.FromContext(ctx).Error("Job failed.", "job_id", jobID, "error", err)
}
