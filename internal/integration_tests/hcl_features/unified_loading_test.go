package hcl_features

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/dagjobs/internal/app"
	"github.com/vk/dagjobs/internal/testutil"
)

// Test for: A directory of HCL files is loaded as one graph, and job labels
// resolve across files.
func TestHCLFeatures_UnifiedLoading(t *testing.T) {
	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"base.hcl": `
job "fetch" { id = 100 }
job "parse" { id = 200 }
`,
		"pipeline/merge.hcl": `
job "merge" {
  id       = 300
  jobs_req = [job.fetch, job.parse, 200]
}
`,
	})
	exec := testutil.NewStubExecutor(0).WithValue(100, 1).WithValue(200, 10).WithValue(300, 1000)
	a, out, _ := app.SetupAppTest(t, app.Config{JobsPath: dir}, exec)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	// parse is listed twice, so its result is counted twice.
	testutil.AssertJobResult(t, out.String(), 300, 1021)
	testutil.AssertJobResult(t, out.String(), 100, 1)
	testutil.AssertJobResult(t, out.String(), 200, 10)
}
