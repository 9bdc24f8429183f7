package shellcheck

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lintwell/shell-ls/internal/document"
	"github.com/lintwell/shell-ls/internal/linter"
)

// fakeRunner returns canned output without touching the process table.
type fakeRunner struct {
	mu    sync.Mutex
	out   *linter.ToolOutput
	err   error
	calls int
	last  linter.Invocation
	stdin string
}

func (f *fakeRunner) Run(_ context.Context, inv linter.Invocation) (*linter.ToolOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = inv
	if inv.Stdin != nil {
		data, _ := io.ReadAll(inv.Stdin)
		f.stdin = string(data)
	}
	return f.out, f.err
}

func observedLogger(t *testing.T) (*zap.SugaredLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core).Sugar(), logs
}

// json1 report for "#!/bin/bash\necho $foo\n".
const echoFooReport = `{"comments": [
	{"file": "-", "line": 2, "endLine": 2, "column": 6, "endColumn": 10,
	 "level": "warning", "code": 2154,
	 "message": "foo is referenced but not assigned.", "fix": null},
	{"file": "-", "line": 2, "endLine": 2, "column": 6, "endColumn": 10,
	 "level": "info", "code": 2086,
	 "message": "Double quote to prevent globbing and word splitting.", "fix": null}
]}`

func TestNew_CanLint(t *testing.T) {
	assert.True(t, New(Config{ExecutablePath: "shellcheck"}).CanLint())
	assert.True(t, New(Config{ExecutablePath: "/usr/bin/shellcheck"}).CanLint())
	assert.False(t, New(Config{ExecutablePath: ""}).CanLint())
}

func TestLint_DisabledShortCircuits(t *testing.T) {
	runner := &fakeRunner{}
	l := New(Config{ExecutablePath: "", Runner: runner})

	diags := l.Lint(context.Background(), document.Document{Text: "echo hi\n"}, nil)

	assert.Empty(t, diags)
	assert.Equal(t, 0, runner.calls)
}

func TestLint_EchoFooFixture(t *testing.T) {
	runner := &fakeRunner{out: &linter.ToolOutput{Stdout: echoFooReport, ExitCode: 1}}
	l := New(Config{ExecutablePath: "shellcheck", Runner: runner})

	doc := document.Document{Text: "#!/bin/bash\necho $foo\n"}
	diags := l.Lint(context.Background(), doc, nil)
	require.Len(t, diags, 2)

	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 5},
		End:   protocol.Position{Line: 1, Character: 9},
	}

	assert.Equal(t, want, diags[0].Range)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, diags[0].Severity)
	assert.Equal(t, "SC2154", diags[0].Code)

	assert.Equal(t, want, diags[1].Range)
	assert.Equal(t, protocol.DiagnosticSeverityInformation, diags[1].Severity)
	assert.Equal(t, "SC2086", diags[1].Code)

	// The buffer content, not a saved file, is what gets linted.
	assert.Equal(t, doc.Text, runner.stdin)
}

func TestLint_NoIssues(t *testing.T) {
	runner := &fakeRunner{out: &linter.ToolOutput{Stdout: `{"comments": []}`, ExitCode: 0}}
	l := New(Config{ExecutablePath: "shellcheck", Runner: runner})

	diags := l.Lint(context.Background(), document.Document{Text: "#!/bin/bash\n"}, nil)

	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestLint_StickyDisableOnMissingTool(t *testing.T) {
	runner := &fakeRunner{err: &linter.StartError{Path: "/nope/shellcheck"}}
	log, logs := observedLogger(t)
	l := New(Config{ExecutablePath: "/nope/shellcheck", Runner: runner, Logger: log})

	doc := document.Document{Text: "echo hi\n"}

	diags := l.Lint(context.Background(), doc, nil)
	assert.Empty(t, diags)
	assert.False(t, l.CanLint())
	assert.Equal(t, 1, runner.calls)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "ShellCheck: disabling linting")

	// Second call short-circuits: no new spawn, no new log noise.
	diags = l.Lint(context.Background(), doc, nil)
	assert.Empty(t, diags)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, 1, logs.Len())
}

func TestLint_MalformedOutputIsSoftFailure(t *testing.T) {
	runner := &fakeRunner{out: &linter.ToolOutput{Stdout: "shellcheck: oops\n"}}
	log, logs := observedLogger(t)
	l := New(Config{ExecutablePath: "shellcheck", Runner: runner, Logger: log})

	diags := l.Lint(context.Background(), document.Document{Text: "echo hi\n"}, nil)

	assert.Empty(t, diags)
	assert.True(t, l.CanLint(), "garbage output must not trip the sticky disable")
	assert.Equal(t, 1, logs.Len())

	// The next call tries again.
	l.Lint(context.Background(), document.Document{Text: "echo hi\n"}, nil)
	assert.Equal(t, 2, runner.calls)
}

func TestLint_SchemaRejectionIsSoftFailure(t *testing.T) {
	runner := &fakeRunner{out: &linter.ToolOutput{Stdout: `{"comments": ["foo"]}`}}
	l := New(Config{ExecutablePath: "shellcheck", Runner: runner})

	diags := l.Lint(context.Background(), document.Document{Text: "echo hi\n"}, nil)

	assert.Empty(t, diags)
	assert.True(t, l.CanLint())
}

func TestLint_UnrecognizedLevelRejectsRun(t *testing.T) {
	report := `{"comments": [
		{"file": "-", "line": 1, "endLine": 1, "column": 1, "endColumn": 2,
		 "level": "belligerent", "code": 1000, "message": "?", "fix": null}
	]}`
	runner := &fakeRunner{out: &linter.ToolOutput{Stdout: report}}
	log, logs := observedLogger(t)
	l := New(Config{ExecutablePath: "shellcheck", Runner: runner, Logger: log})

	diags := l.Lint(context.Background(), document.Document{Text: "x\n"}, nil)

	assert.Empty(t, diags)
	assert.Equal(t, 1, logs.Len())
}

func TestLint_RunFailureIsSoftFailure(t *testing.T) {
	runner := &fakeRunner{err: context.DeadlineExceeded}
	l := New(Config{ExecutablePath: "shellcheck", Runner: runner})

	diags := l.Lint(context.Background(), document.Document{Text: "echo hi\n"}, nil)

	assert.Empty(t, diags)
	assert.True(t, l.CanLint(), "a timeout is not a missing tool")
}

func TestLint_Invocation(t *testing.T) {
	runner := &fakeRunner{out: &linter.ToolOutput{Stdout: `{"comments": []}`}}
	l := New(Config{ExecutablePath: "shellcheck", CWD: "/base", Runner: runner})

	folders := []protocol.WorkspaceFolder{
		{URI: "file:///work/project", Name: "project"},
	}
	l.Lint(context.Background(), document.Document{URI: uri.File("/base/run.sh"), Text: "x\n"}, folders)

	assert.Equal(t, "shellcheck", runner.last.Path)
	assert.Equal(t, "/base", runner.last.Dir)
	assert.Equal(t, []string{
		"--shell=bash",
		"--format=json1",
		"--external-sources",
		"--source-path=/base",
		"--source-path=/work/project",
		"-",
	}, runner.last.Args)
}

func TestLint_ShellDialect(t *testing.T) {
	runner := &fakeRunner{out: &linter.ToolOutput{Stdout: `{"comments": []}`}}
	l := New(Config{ExecutablePath: "shellcheck", CWD: "/base", Shell: "sh", Runner: runner})

	l.Lint(context.Background(), document.Document{Text: "x\n"}, nil)

	assert.Equal(t, "--shell=sh", runner.last.Args[0])
}

func TestLint_ConcurrentMissingToolLogsOnce(t *testing.T) {
	runner := &fakeRunner{err: &linter.StartError{Path: "shellcheck"}}
	log, logs := observedLogger(t)
	l := New(Config{ExecutablePath: "shellcheck", Runner: runner, Logger: log})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lint(context.Background(), document.Document{Text: "echo hi\n"}, nil)
		}()
	}
	wg.Wait()

	assert.False(t, l.CanLint())
	assert.Equal(t, 1, logs.Len())
}
