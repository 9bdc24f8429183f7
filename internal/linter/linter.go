// Package linter provides subprocess execution for external analysis tools.
package linter

import (
	"context"
	"io"
)

// Invocation describes a single run of an external tool.
type Invocation struct {
	// Path is the executable to run. It may be a bare name resolved via PATH.
	Path string

	// Args are the command-line arguments.
	Args []string

	// Dir is the working directory. Empty = inherit.
	Dir string

	// Stdin is fed to the process's standard input. May be nil.
	Stdin io.Reader
}

// Runner runs external tools. It is an interface so that linting logic can be
// tested with canned outputs instead of a real process table.
type Runner interface {
	// Run executes the invocation and returns its captured output.
	//
	// A non-zero exit code is not an error: many linters exit non-zero
	// whenever they report issues, so the output is returned with the exit
	// code recorded. The error return is reserved for the tool failing to
	// start or failing to run to completion.
	Run(ctx context.Context, inv Invocation) (*ToolOutput, error)
}

// ToolOutput is the raw output from a tool execution.
type ToolOutput struct {
	// Stdout is the standard output.
	Stdout string

	// Stderr is the error output.
	Stderr string

	// ExitCode is the process exit code.
	ExitCode int

	// Duration is how long the tool took to run.
	Duration string
}
