package error_handling

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dagjobs/internal/app"
	"github.com/vk/dagjobs/internal/config"
	"github.com/vk/dagjobs/internal/dag"
	"github.com/vk/dagjobs/internal/testutil"
)

// Test for: Invalid graphs are rejected before any job is launched.
func TestErrorHandling_InvalidJobsAreRejected(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		wantIs  error
		wantMsg string
	}{
		{
			name:    "two job cycle",
			file:    "jobs.yaml",
			content: "jobs:\n  - id: 0\n    jobsReq: [1]\n  - id: 1\n    jobsReq: [0]\n",
			wantIs:  dag.ErrCycleDetected,
			wantMsg: "jobs graph has cycles",
		},
		{
			name:    "self loop",
			file:    "jobs.yaml",
			content: "jobs:\n  - id: 4\n    jobsReq: [4]\n",
			wantIs:  dag.ErrCycleDetected,
			wantMsg: "4 -> 4",
		},
		{
			name: "cycle behind an entry job",
			file: "jobs.hcl",
			content: `
job "entry" {
  id       = 0
  jobs_req = [job.x]
}
job "x" {
  id       = 1
  jobs_req = [job.y]
}
job "y" {
  id       = 2
  jobs_req = [job.x]
}
`,
			wantIs: dag.ErrCycleDetected,
		},
		{
			name:    "dangling prerequisite",
			file:    "jobs.yaml",
			content: "jobs:\n  - id: 0\n    jobsReq: [1]\n",
			wantIs:  dag.ErrUnknownJob,
			wantMsg: "job 0 requires job 1",
		},
		{
			name:    "duplicate id",
			file:    "jobs.yaml",
			content: "jobs:\n  - id: 3\n  - id: 3\n",
			wantIs:  dag.ErrDuplicateJob,
		},
		{
			name:    "invalid hcl",
			file:    "jobs.hcl",
			content: `job "a" { id = }`,
			wantIs:  config.ErrInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, map[string]string{tc.file: tc.content})
			exec := testutil.NewStubExecutor(1)
			a, out, _ := app.SetupAppTest(t, app.Config{JobsPath: filepath.Join(dir, tc.file)}, exec)

			err := a.Run(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantIs)
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
			assert.Empty(t, exec.Calls(), "no job may run when the graph is invalid")
			assert.Empty(t, out.String())
		})
	}
}
