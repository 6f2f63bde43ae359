package workexec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/vk/dagjobs/internal/ctxlog"
)

// JobIDEnv is the environment variable carrying the job id into the child.
const JobIDEnv = "DAGJOBS_JOB_ID"

// GenerateFlag is the flag that switches the dagjobs binary into child mode.
const GenerateFlag = "-generate"

// Process runs Command once per job and decodes the child's stdout.
type Process struct {
	// Command is the executable followed by its arguments.
	Command []string
	// Env is appended to the parent's environment.
	Env []string
}

// NewProcess returns a Process running the given command.
func NewProcess(command ...string) *Process {
	return &Process{Command: command}
}

// NewSelfProcess returns a Process that re-executes the running binary in
// generate mode.
func NewSelfProcess() (*Process, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate own executable: %w", err)
	}
	return NewProcess(self, GenerateFlag), nil
}

// Execute starts the child, waits for it and decodes its output.
func (p *Process) Execute(ctx context.Context, jobID uint64) (int, error) {
	if len(p.Command) == 0 {
		return 0, errors.New("process executor has no command")
	}
	logger := ctxlog.FromContext(ctx)

	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Env = append(os.Environ(), p.Env...)
	cmd.Env = append(cmd.Env, JobIDEnv+"="+strconv.FormatUint(jobID, 10))

	logger.Debug("Starting work process.", "job_id", jobID, "command", p.Command[0])
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return 0, fmt.Errorf("work process failed: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return 0, fmt.Errorf("work process failed: %w", err)
	}

	value, err := Decode(out)
	if err != nil {
		return 0, err
	}
	logger.Debug("Work process finished.", "job_id", jobID, "value", value)
	return value, nil
}
