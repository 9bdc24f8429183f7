package linter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// StartError means the tool never ran: the executable is missing, not
// runnable, or the OS refused to spawn it. Callers use it to distinguish a
// broken installation from a tool that ran and misbehaved.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// IsNotInstalled reports whether err means the executable could not be
// spawned at all.
func IsNotInstalled(err error) bool {
	var startErr *StartError
	return errors.As(err, &startErr)
}

// SubprocessExecutor runs external tools as subprocesses.
type SubprocessExecutor struct {
	// Timeout is the max execution time.
	// Default: 30 seconds
	Timeout time.Duration
}

// NewSubprocessExecutor creates a new executor.
func NewSubprocessExecutor() *SubprocessExecutor {
	return &SubprocessExecutor{
		Timeout: 30 * time.Second,
	}
}

// Run executes a command, feeding inv.Stdin to it and capturing stdout and
// stderr in full before returning.
func (e *SubprocessExecutor) Run(ctx context.Context, inv Invocation) (*ToolOutput, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Path: inv.Path, Err: err}
	}

	start := time.Now()
	err := cmd.Wait()

	output := &ToolOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start).String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return output, fmt.Errorf("%s timed out: %w", inv.Path, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is the tool's way of reporting findings.
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}

		return output, fmt.Errorf("running %s: %w", inv.Path, err)
	}

	output.ExitCode = 0
	return output, nil
}
