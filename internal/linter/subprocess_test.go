package linter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	e := NewSubprocessExecutor()

	out, err := e.Run(context.Background(), Invocation{
		Path: "sh",
		Args: []string{"-c", "echo hello"},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello\n", out.Stdout)
	assert.Equal(t, 0, out.ExitCode)
	assert.NotEmpty(t, out.Duration)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	e := NewSubprocessExecutor()

	out, err := e.Run(context.Background(), Invocation{
		Path: "sh",
		Args: []string{"-c", "echo findings; exit 3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "findings\n", out.Stdout)
	assert.Equal(t, 3, out.ExitCode)
}

func TestRun_Stdin(t *testing.T) {
	e := NewSubprocessExecutor()

	out, err := e.Run(context.Background(), Invocation{
		Path:  "cat",
		Stdin: strings.NewReader("echo $foo\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, "echo $foo\n", out.Stdout)
}

func TestRun_Stderr(t *testing.T) {
	e := NewSubprocessExecutor()

	out, err := e.Run(context.Background(), Invocation{
		Path: "sh",
		Args: []string{"-c", "echo oops >&2; exit 1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "oops\n", out.Stderr)
	assert.Equal(t, 1, out.ExitCode)
}

func TestRun_MissingExecutable(t *testing.T) {
	e := NewSubprocessExecutor()

	_, err := e.Run(context.Background(), Invocation{
		Path: "/no/such/binary-anywhere",
	})
	require.Error(t, err)

	assert.True(t, IsNotInstalled(err))
}

func TestRun_Timeout(t *testing.T) {
	e := &SubprocessExecutor{Timeout: 100 * time.Millisecond}

	_, err := e.Run(context.Background(), Invocation{
		Path: "sh",
		Args: []string{"-c", "sleep 10"},
	})
	require.Error(t, err)

	assert.False(t, IsNotInstalled(err))
}

func TestIsNotInstalled_OtherErrors(t *testing.T) {
	assert.False(t, IsNotInstalled(nil))
	assert.False(t, IsNotInstalled(context.DeadlineExceeded))
}
