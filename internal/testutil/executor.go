package testutil

import (
	"context"
	"sync"
)

// StubExecutor is a deterministic work executor for tests. It returns a fixed
// value per job id, fails for configured ids and records every call in order.
type StubExecutor struct {
	mu       sync.Mutex
	values   map[uint64]int
	failures map[uint64]error
	fallback int
	calls    []uint64
}

// NewStubExecutor creates an executor that returns fallback for every job
// without an explicit value.
func NewStubExecutor(fallback int) *StubExecutor {
	return &StubExecutor{
		values:   make(map[uint64]int),
		failures: make(map[uint64]error),
		fallback: fallback,
	}
}

// WithValue makes the executor return v for jobID.
func (s *StubExecutor) WithValue(jobID uint64, v int) *StubExecutor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[jobID] = v
	return s
}

// FailOn makes the executor return err for jobID.
func (s *StubExecutor) FailOn(jobID uint64, err error) *StubExecutor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[jobID] = err
	return s
}

func (s *StubExecutor) Execute(ctx context.Context, jobID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, jobID)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err, ok := s.failures[jobID]; ok {
		return 0, err
	}
	if v, ok := s.values[jobID]; ok {
		return v, nil
	}
	return s.fallback, nil
}

// Calls returns the job ids in the order they were executed.
func (s *StubExecutor) Calls() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint64(nil), s.calls...)
}

// CallCount returns how many times jobID was executed.
func (s *StubExecutor) CallCount(jobID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range s.calls {
		if id == jobID {
			n++
		}
	}
	return n
}
