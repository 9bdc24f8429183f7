package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/lintwell/shell-ls/internal/config"
	"github.com/lintwell/shell-ls/internal/document"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Run ShellCheck over scripts and print diagnostics",
	Long: `Lints the given shell scripts and prints every finding with its range,
severity, code and message. The current directory is offered to ShellCheck
as a search path for resolving sourced files.

Exits non-zero when any error-level finding is reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer func() { _ = log.Sync() }()

		lin, _, err := newLinter(log)
		if err != nil {
			return err
		}

		folders := currentDirFolder()

		errorCount := 0
		byFile := make(map[string][]protocol.Diagnostic, len(args))
		for _, path := range args {
			doc, err := document.FromPath(path)
			if err != nil {
				return err
			}

			diags := lin.Lint(cmd.Context(), doc, folders)
			byFile[path] = diags

			if checkFormat == "text" {
				printDiagnostics(path, doc, diags)
			}
			for _, d := range diags {
				if d.Severity == protocol.DiagnosticSeverityError {
					errorCount++
				}
			}
		}

		if !lin.CanLint() {
			return fmt.Errorf("shellcheck is not available; install it or set executable in %s", configName())
		}

		if checkFormat == "json" {
			out, err := json.MarshalIndent(byFile, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}

		if errorCount > 0 {
			return fmt.Errorf("%d error-level finding(s)", errorCount)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "output format (text|json)")
}

// printDiagnostics renders findings with the offending line and a marker
// under the reported range.
func printDiagnostics(path string, doc document.Document, diags []protocol.Diagnostic) {
	for _, d := range diags {
		fmt.Printf("%s:%d:%d: %s [%v] %s\n",
			path, d.Range.Start.Line+1, d.Range.Start.Character+1,
			severityLabel(d.Severity), d.Code, d.Message)

		line := doc.Line(int(d.Range.Start.Line))
		if line == "" {
			continue
		}
		fmt.Printf("    %s\n", line)
		fmt.Printf("    %s\n", rangeMarker(line, d.Range))
	}
}

// rangeMarker draws ^---^ under the span the diagnostic covers on its first
// line.
func rangeMarker(line string, r protocol.Range) string {
	start := int(r.Start.Character)
	end := len(line)
	if r.End.Line == r.Start.Line {
		end = int(r.End.Character)
	}
	if start > len(line) {
		start = len(line)
	}
	if end > len(line) {
		end = len(line)
	}
	width := end - start
	if width < 1 {
		width = 1
	}

	marker := strings.Repeat(" ", start)
	if width == 1 {
		return marker + "^"
	}
	return marker + "^" + strings.Repeat("-", width-2) + "^"
}

func severityLabel(s protocol.DiagnosticSeverity) string {
	switch s {
	case protocol.DiagnosticSeverityError:
		return "error"
	case protocol.DiagnosticSeverityWarning:
		return "warning"
	case protocol.DiagnosticSeverityInformation:
		return "info"
	case protocol.DiagnosticSeverityHint:
		return "style"
	}
	return "unknown"
}

func currentDirFolder() []protocol.WorkspaceFolder {
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return []protocol.WorkspaceFolder{{
		URI:  string(uri.File(wd)),
		Name: filepath.Base(wd),
	}}
}

func configName() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.FileName
}
