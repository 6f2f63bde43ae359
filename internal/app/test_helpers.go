package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/dagjobs/internal/testutil"
	"github.com/vk/dagjobs/internal/workexec"
)

// SetupAppTest creates an app that runs jobs with exec and captures its
// output and logs. Logs are dumped when DAGJOBS_TEST_LOGS=true.
func SetupAppTest(t *testing.T, cfg Config, exec workexec.Executor) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	out := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"

	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)
	testApp, err := NewApp(out, logs, appConfig, WithExecutor(exec))
	require.NoError(t, err)

	t.Cleanup(func() { testutil.DumpLogs(t, logs) })
	return testApp, out, logs
}
