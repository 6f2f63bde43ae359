package dag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/dagjobs/internal/config"
)

var (
	// ErrDuplicateJob is returned when the same id is declared twice.
	ErrDuplicateJob = fmt.Errorf("%w: duplicate job id", config.ErrInvalid)

	// ErrUnknownJob is returned when a job requires an id that is not declared.
	ErrUnknownJob = fmt.Errorf("%w: unknown prerequisite", config.ErrInvalid)

	// ErrCycleDetected is matched by every CycleError.
	ErrCycleDetected = errors.New("jobs graph has cycles")
)

// CycleError provides details about a detected cycle.
type CycleError struct {
	// Path lists the job ids on the cycle; the last id requires the first.
	Path []uint64
}

func (e *CycleError) Error() string {
	parts := make([]string, 0, len(e.Path)+1)
	for _, id := range e.Path {
		parts = append(parts, strconv.FormatUint(id, 10))
	}
	if len(e.Path) > 0 {
		parts = append(parts, strconv.FormatUint(e.Path[0], 10))
	}
	return fmt.Sprintf("%v: %s", ErrCycleDetected, strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}
