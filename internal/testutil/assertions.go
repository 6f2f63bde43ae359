package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertJobResult checks that output contains the result line of a job.
func AssertJobResult(t *testing.T, output string, jobID uint64, value int) {
	t.Helper()

	line := fmt.Sprintf("Job %d, result: %d", jobID, value)
	require.True(t,
		containsLine(output, line),
		"expected result line %q was not found in output:\n%s", line, output,
	)
}

// AssertNoJobResult checks that output has no result line for a job.
func AssertNoJobResult(t *testing.T, output string, jobID uint64) {
	t.Helper()

	prefix := fmt.Sprintf("Job %d, result: ", jobID)
	for _, l := range strings.Split(output, "\n") {
		require.False(t, strings.HasPrefix(l, prefix), "unexpected result line %q", l)
	}
}

// ResultLines returns the result lines of output in the order they appear.
func ResultLines(output string) []string {
	var lines []string
	for _, l := range strings.Split(output, "\n") {
		if strings.HasPrefix(l, "Job ") && strings.Contains(l, ", result: ") {
			lines = append(lines, l)
		}
	}
	return lines
}

func containsLine(output, line string) bool {
	for _, l := range strings.Split(output, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
