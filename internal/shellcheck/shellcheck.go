// Package shellcheck adapts the ShellCheck static analyzer for use by
// editor-facing hosts. It runs the tool as a subprocess over the current
// buffer content, validates its JSON report before trusting it, and converts
// every finding into an LSP diagnostic.
package shellcheck

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/lintwell/shell-ls/internal/document"
	"github.com/lintwell/shell-ls/internal/linter"
)

// disableMessage is the fixed substring logged when linting is switched off
// for the lifetime of the instance. Kept stable so operators can grep for it.
const disableMessage = "ShellCheck: disabling linting"

// DefaultTimeout bounds a single ShellCheck run.
const DefaultTimeout = 30 * time.Second

// Config holds the construction parameters for a Linter.
type Config struct {
	// ExecutablePath locates the shellcheck binary. Empty means no tool is
	// configured and the instance starts disabled.
	ExecutablePath string

	// CWD is the base directory scripts resolve sourced files against.
	// Empty = derive from the document being linted.
	CWD string

	// Shell is the dialect passed via --shell. Default: bash.
	Shell string

	// Timeout bounds each tool invocation. Default: DefaultTimeout.
	Timeout time.Duration

	// Logger receives the degradation warning and per-run failures.
	// Default: no-op.
	Logger *zap.SugaredLogger

	// Runner executes the subprocess. Default: a SubprocessExecutor.
	// Overridden in tests to avoid the process table.
	Runner linter.Runner
}

// Linter drives ShellCheck and owns the sticky enablement state. A single
// instance is safe for concurrent use; every Lint call spawns its own
// process and shares nothing but the enablement flag.
type Linter struct {
	executablePath string
	cwd            string
	shell          string
	log            *zap.SugaredLogger
	runner         linter.Runner

	// canLint transitions true -> false exactly once, when the executable
	// turns out to be missing or unusable. It never transitions back.
	canLint atomic.Bool
}

// New creates a Linter. It never fails: a missing executable only means the
// instance starts (and stays) disabled.
func New(cfg Config) *Linter {
	l := &Linter{
		executablePath: cfg.ExecutablePath,
		cwd:            cfg.CWD,
		shell:          cfg.Shell,
		log:            cfg.Logger,
		runner:         cfg.Runner,
	}
	if l.shell == "" {
		l.shell = "bash"
	}
	if l.log == nil {
		l.log = zap.NewNop().Sugar()
	}
	if l.runner == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		l.runner = &linter.SubprocessExecutor{Timeout: timeout}
	}
	l.canLint.Store(cfg.ExecutablePath != "")
	return l
}

// CanLint reports whether this instance still attempts to run the tool.
func (l *Linter) CanLint() bool {
	return l.canLint.Load()
}

// Lint runs ShellCheck over the document text and returns its findings as
// diagnostics. It never fails toward the caller: when the tool is missing,
// times out, or emits garbage, the result is an empty slice and the cause
// goes to the log. Workspace folders are offered to the tool as extra
// search paths for resolving sourced files; they are read only for the
// duration of the call.
func (l *Linter) Lint(ctx context.Context, doc document.Document, folders []protocol.WorkspaceFolder) []protocol.Diagnostic {
	if !l.canLint.Load() {
		return []protocol.Diagnostic{}
	}

	cwd := l.workingDirectory(doc)

	out, err := l.runner.Run(ctx, linter.Invocation{
		Path:  l.executablePath,
		Args:  l.arguments(cwd, folders),
		Dir:   cwd,
		Stdin: strings.NewReader(doc.Text),
	})
	if err != nil {
		if linter.IsNotInstalled(err) {
			// Log only from the goroutine that wins the flip, so a burst of
			// concurrent calls produces a single warning.
			if l.canLint.CompareAndSwap(true, false) {
				l.log.Warnf("%s: executable %q is not usable: %v", disableMessage, l.executablePath, err)
			}
			return []protocol.Diagnostic{}
		}
		l.log.Warnf("shellcheck run failed: %v", err)
		return []protocol.Diagnostic{}
	}

	// Exit status is ignored: shellcheck exits non-zero whenever it reports
	// anything. Only the stdout payload decides success.
	var decoded any
	if err := json.Unmarshal([]byte(out.Stdout), &decoded); err != nil {
		l.log.Warnf("shellcheck produced unparseable output: %v", err)
		return []protocol.Diagnostic{}
	}

	report, err := ValidateReport(decoded)
	if err != nil {
		l.log.Warnf("shellcheck output rejected: %v", err)
		return []protocol.Diagnostic{}
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(report.Comments))
	for _, comment := range report.Comments {
		d, err := toDiagnostic(comment)
		if err != nil {
			l.log.Warnf("shellcheck output rejected: %v", err)
			return []protocol.Diagnostic{}
		}
		diagnostics = append(diagnostics, d)
	}

	return diagnostics
}

// arguments builds the command line: structured output, stdin source, and
// every candidate directory for resolving sourced files.
func (l *Linter) arguments(cwd string, folders []protocol.WorkspaceFolder) []string {
	args := []string{
		"--shell=" + l.shell,
		"--format=json1",
		"--external-sources",
	}
	for _, p := range sourcePaths(cwd, folders) {
		args = append(args, "--source-path="+p)
	}
	return append(args, "-")
}
