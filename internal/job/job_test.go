package job_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dagjobs/internal/job"
	"github.com/vk/dagjobs/internal/testutil"
	"github.com/vk/dagjobs/internal/workexec"
)

// eventLog records sink notifications as short strings.
type eventLog struct {
	events []string
}

func (l *eventLog) JobLaunched(_ context.Context, id uint64) {
	l.events = append(l.events, fmt.Sprintf("launched %d", id))
}

func (l *eventLog) JobGenerated(_ context.Context, id uint64, base int) {
	l.events = append(l.events, fmt.Sprintf("generated %d %d", id, base))
}

func (l *eventLog) JobCompleted(_ context.Context, id uint64, result int) {
	l.events = append(l.events, fmt.Sprintf("completed %d %d", id, result))
}

func (l *eventLog) JobFailed(_ context.Context, id uint64, _ error) {
	l.events = append(l.events, fmt.Sprintf("failed %d", id))
}

func TestLaunch(t *testing.T) {
	ctx := context.Background()

	t.Run("single job caches base value", func(t *testing.T) {
		exec := testutil.NewStubExecutor(0).WithValue(5, 42)
		j := job.New(5, 0)

		require.NoError(t, j.Launch(ctx, exec, nil))
		r, ok := j.Result()
		assert.True(t, ok)
		assert.Equal(t, 42, r)
		assert.Equal(t, job.Done, j.State())
	})

	t.Run("second launch is a no-op", func(t *testing.T) {
		exec := testutil.NewStubExecutor(7)
		j := job.New(1, 0)

		require.NoError(t, j.Launch(ctx, exec, nil))
		require.NoError(t, j.Launch(ctx, exec, nil))
		assert.Equal(t, 1, exec.CallCount(1))
	})

	t.Run("result sums prerequisites", func(t *testing.T) {
		// 0 requires 1 and 2, both with base 1; 0 has base 8.
		exec := testutil.NewStubExecutor(1).WithValue(0, 8)
		a, b, c := job.New(0, 0), job.New(1, 1), job.New(2, 2)
		a.AddPrerequisite(b)
		a.AddPrerequisite(c)

		require.NoError(t, a.Launch(ctx, exec, nil))
		r, _ := a.Result()
		assert.Equal(t, 10, r)
		assert.Equal(t, []uint64{1, 2, 0}, exec.Calls(), "prerequisites launch first in declaration order")
	})

	t.Run("diamond runs shared prerequisite once", func(t *testing.T) {
		exec := testutil.NewStubExecutor(1)
		top, left, right, bottom := job.New(0, 0), job.New(1, 1), job.New(2, 2), job.New(3, 3)
		top.AddPrerequisite(left)
		top.AddPrerequisite(right)
		left.AddPrerequisite(bottom)
		right.AddPrerequisite(bottom)

		require.NoError(t, top.Launch(ctx, exec, nil))
		assert.Equal(t, 1, exec.CallCount(3))
		r, _ := top.Result()
		// bottom=1, left=2, right=2, top=1+2+2
		assert.Equal(t, 5, r)
	})

	t.Run("duplicate prerequisite is counted twice", func(t *testing.T) {
		exec := testutil.NewStubExecutor(3)
		a, b := job.New(0, 0), job.New(1, 1)
		a.AddPrerequisite(b)
		a.AddPrerequisite(b)

		require.NoError(t, a.Launch(ctx, exec, nil))
		r, _ := a.Result()
		assert.Equal(t, 9, r)
		assert.Equal(t, 1, exec.CallCount(1))
	})

	t.Run("failure leaves job without result", func(t *testing.T) {
		boom := errors.New("boom")
		exec := testutil.NewStubExecutor(1).FailOn(1, boom)
		a, b := job.New(0, 0), job.New(1, 1)
		a.AddPrerequisite(b)

		err := a.Launch(ctx, exec, nil)
		require.Error(t, err)

		var launchErr *job.LaunchError
		require.ErrorAs(t, err, &launchErr)
		assert.Equal(t, uint64(1), launchErr.JobID)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "job 1 crashed: boom", err.Error())

		_, ok := a.Result()
		assert.False(t, ok)
		assert.Equal(t, job.Pending, a.State())
		assert.Equal(t, job.Failed, b.State())
		assert.Equal(t, 0, exec.CallCount(0), "dependent must not run after a failed prerequisite")
	})
}

func TestLaunch_Events(t *testing.T) {
	ctx := context.Background()

	t.Run("prerequisites are reported before the dependent", func(t *testing.T) {
		log := &eventLog{}
		a, b := job.New(0, 0), job.New(1, 1)
		a.AddPrerequisite(b)

		require.NoError(t, a.Launch(ctx, testutil.NewStubExecutor(2), log))
		assert.Equal(t, []string{
			"launched 1", "generated 1 2", "completed 1 2",
			"launched 0", "generated 0 2", "completed 0 4",
		}, log.events)
	})

	t.Run("dependent of a failed prerequisite is never reported launched", func(t *testing.T) {
		log := &eventLog{}
		a, b := job.New(0, 0), job.New(1, 1)
		a.AddPrerequisite(b)

		exec := testutil.NewStubExecutor(2).FailOn(1, errors.New("boom"))
		require.Error(t, a.Launch(ctx, exec, log))
		assert.Equal(t, []string{"launched 1", "failed 1"}, log.events)
	})
}

func TestLaunch_ReadersDoNotWaitOnExecutor(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	exec := workexec.Func(func(context.Context, uint64) (int, error) {
		close(started)
		<-release
		return 6, nil
	})
	j := job.New(1, 0)

	done := make(chan error, 1)
	go func() { done <- j.Launch(context.Background(), exec, nil) }()
	<-started

	stateRead := make(chan job.State, 1)
	go func() { stateRead <- j.State() }()
	select {
	case s := <-stateRead:
		assert.Equal(t, job.Running, s)
	case <-time.After(2 * time.Second):
		t.Fatal("State() blocked while the executor was running")
	}
	_, ok := j.Result()
	assert.False(t, ok)

	close(release)
	require.NoError(t, <-done)
	r, ok := j.Result()
	assert.True(t, ok)
	assert.Equal(t, 6, r)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	j := job.New(3, 0)

	err := j.PrintResult(&buf)
	assert.ErrorIs(t, err, job.ErrNoResult)
	assert.Empty(t, buf.String())

	require.NoError(t, j.Launch(context.Background(), testutil.NewStubExecutor(50), nil))
	require.NoError(t, j.PrintResult(&buf))
	assert.Equal(t, "Job 3, result: 50", buf.String())
	assert.Equal(t, "job 3", j.String())
}
