package shellcheck

import (
	"fmt"
	"strconv"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const (
	// Source identifies this analyzer on every diagnostic.
	Source = "shellcheck"

	codePrefix  = "SC"
	wikiBaseURL = "https://www.shellcheck.net/wiki/"
)

// WikiURL returns the documentation page for a diagnostic code like "SC2154".
func WikiURL(code string) uri.URI {
	return uri.URI(wikiBaseURL + code)
}

// toDiagnostic translates one validated tool comment into an LSP diagnostic.
// It fails only on a level string outside ShellCheck's documented set; that
// is a defect in the tool contract, not something to paper over with a
// default severity.
func toDiagnostic(c ToolComment) (protocol.Diagnostic, error) {
	severity, err := severityFor(c.Level)
	if err != nil {
		return protocol.Diagnostic{}, err
	}

	code := codePrefix + strconv.Itoa(c.Code)

	return protocol.Diagnostic{
		Range: protocol.Range{
			// ShellCheck positions are 1-based, LSP positions 0-based.
			Start: protocol.Position{
				Line:      uint32(c.Line - 1),
				Character: uint32(c.Column - 1),
			},
			End: protocol.Position{
				Line:      uint32(c.EndLine - 1),
				Character: uint32(c.EndColumn - 1),
			},
		},
		Severity:        severity,
		Code:            code,
		CodeDescription: &protocol.CodeDescription{Href: WikiURL(code)},
		Source:          Source,
		Message:         c.Message,
	}, nil
}

func severityFor(level string) (protocol.DiagnosticSeverity, error) {
	switch level {
	case "error":
		return protocol.DiagnosticSeverityError, nil
	case "warning":
		return protocol.DiagnosticSeverityWarning, nil
	case "info":
		return protocol.DiagnosticSeverityInformation, nil
	case "style":
		return protocol.DiagnosticSeverityHint, nil
	}
	return 0, fmt.Errorf("unrecognized shellcheck level %q", level)
}
