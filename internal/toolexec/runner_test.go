package toolexec

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	out, errb, err := NewRunner(0).Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
	assert.Empty(t, errb)
}

func TestExecRunnerReportsFailure(t *testing.T) {
	_, _, err := NewRunner(0).Run(context.Background(), "false")
	assert.Error(t, err)
}

func TestExecRunnerTimeout(t *testing.T) {
	start := time.Now()
	_, _, err := NewRunner(50*time.Millisecond).Run(context.Background(), "sleep", "5")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("x", 20)
	assert.Equal(t, long[:10]+"...(truncated)", truncate(long, 10))
}
