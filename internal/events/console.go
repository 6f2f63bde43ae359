package events

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Console prints launch and generate lines in the plain text format users
// of the command line see:
//
//	Job 3 launched
//	> Job 3 generated 42
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) JobLaunched(_ context.Context, jobID uint64) {
	c.printf("Job %d launched\n", jobID)
}

func (c *Console) JobGenerated(_ context.Context, jobID uint64, base int) {
	c.printf("> Job %d generated %d\n", jobID, base)
}

func (c *Console) JobCompleted(context.Context, uint64, int) {}

func (c *Console) JobFailed(context.Context, uint64, error) {}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}
