package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dagjobs/internal/config"
	"github.com/vk/dagjobs/internal/dag"
	"github.com/vk/dagjobs/internal/scheduler"
	"github.com/vk/dagjobs/internal/testutil"
)

const threeJobsHCL = `
job "a" { id = 0 }
job "b" { id = 1 }
job "c" {
  id       = 2
  jobs_req = [job.a, job.b]
}
`

func threeJobsExecutor() *testutil.StubExecutor {
	return testutil.NewStubExecutor(0).WithValue(0, 2).WithValue(1, 3).WithValue(2, 5)
}

func TestRun_Success(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"jobs.hcl": threeJobsHCL})
	a, out, logs := SetupAppTest(t, Config{JobsPath: filepath.Join(dir, "jobs.hcl")}, threeJobsExecutor())

	require.NoError(t, a.Run(context.Background()))

	want := "Job 1 launched\n" +
		"> Job 1 generated 3\n" +
		"Job 0 launched\n" +
		"> Job 0 generated 2\n" +
		"Job 2 launched\n" +
		"> Job 2 generated 5\n" +
		"Job 2, result: 10\n" +
		"Job 0, result: 2\n" +
		"Job 1, result: 3\n"
	assert.Equal(t, want, out.String())
	assert.Contains(t, logs.String(), "run_id=")
}

func TestRun_YAML(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"jobs.yml": `
jobs:
  - id: 0
  - id: 1
  - id: 2
    jobsReq: [0, 1]
`})
	a, out, _ := SetupAppTest(t, Config{JobsPath: filepath.Join(dir, "jobs.yml")}, threeJobsExecutor())

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{
		"Job 2, result: 10",
		"Job 0, result: 2",
		"Job 1, result: 3",
	}, testutil.ResultLines(out.String()))
}

func TestRun_JobFailure(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"jobs.hcl": threeJobsHCL})
	exec := threeJobsExecutor().FailOn(0, errors.New("exit status 1"))
	a, out, _ := SetupAppTest(t, Config{JobsPath: filepath.Join(dir, "jobs.hcl")}, exec)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, scheduler.ErrRunHalted)

	output := out.String()
	assert.Contains(t, output, "Error: job 0 crashed!\n")
	testutil.AssertJobResult(t, output, 1, 3)
	testutil.AssertNoJobResult(t, output, 0)
	testutil.AssertNoJobResult(t, output, 2)
	assert.Equal(t, 0, exec.CallCount(2))
}

func TestRun_ConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		wantIs  error
	}{
		{
			name:    "cycle",
			file:    "jobs.hcl",
			content: "job \"a\" {\n  id = 0\n  jobs_req = [1]\n}\njob \"b\" {\n  id = 1\n  jobs_req = [0]\n}\n",
			wantIs:  dag.ErrCycleDetected,
		},
		{
			name:    "dangling prerequisite",
			file:    "jobs.yaml",
			content: "jobs:\n  - id: 0\n    jobsReq: [1]\n",
			wantIs:  config.ErrInvalid,
		},
		{
			name:    "unsupported extension",
			file:    "jobs.json",
			content: `{}`,
			wantIs:  config.ErrInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, map[string]string{tc.file: tc.content})
			exec := testutil.NewStubExecutor(1)
			a, out, _ := SetupAppTest(t, Config{JobsPath: filepath.Join(dir, tc.file)}, exec)

			err := a.Run(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantIs)
			assert.Empty(t, out.String())
			assert.Empty(t, exec.Calls())
		})
	}
}

func TestHandler(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"jobs.hcl": threeJobsHCL})
	a, _, _ := SetupAppTest(t, Config{JobsPath: filepath.Join(dir, "jobs.hcl")}, threeJobsExecutor())
	require.NoError(t, a.Run(context.Background()))

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "dagjobs_jobs_launched_total 3")
		assert.Contains(t, rec.Body.String(), "dagjobs_jobs_completed_total 3")
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{JobsPath: "jobs.hcl"})
		require.NoError(t, err)
		assert.Equal(t, ExecutorProcess, cfg.Executor)
		assert.Equal(t, "/", cfg.EventsNamespace)
		assert.Equal(t, "job", cfg.EventsName)
	})

	testCases := []struct {
		name string
		cfg  Config
	}{
		{"missing path", Config{}},
		{"unknown executor", Config{JobsPath: "jobs.hcl", Executor: "thread"}},
		{"bad port", Config{JobsPath: "jobs.hcl", HealthcheckPort: 70000}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewApp_RandomExecutor(t *testing.T) {
	cfg, err := NewConfig(Config{JobsPath: "jobs.hcl", Executor: ExecutorRandom})
	require.NoError(t, err)
	a, err := NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, cfg)
	require.NoError(t, err)

	v, err := a.executor.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 100)
}
