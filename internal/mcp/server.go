// Package mcp exposes the linter to agent hosts over the Model Context
// Protocol. It gives tooling a way to lint script buffers without speaking
// LSP.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/lintwell/shell-ls/internal/document"
	"github.com/lintwell/shell-ls/internal/shellcheck"
)

// Server is an MCP server over stdio.
type Server struct {
	linter  *shellcheck.Linter
	log     *zap.SugaredLogger
	version string
}

// NewServer creates an MCP server wrapping the given linter.
func NewServer(l *shellcheck.Linter, log *zap.SugaredLogger, version string) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{linter: l, log: log, version: version}
}

// LintScriptInput is the input schema for the lint_script tool.
type LintScriptInput struct {
	Script           string   `json:"script" jsonschema:"Shell script source to lint"`
	URI              string   `json:"uri,omitempty" jsonschema:"Optional file URI of the script, used to pick the directory sourced files resolve against"`
	WorkspaceFolders []string `json:"workspace_folders,omitempty" jsonschema:"Extra directories offered to ShellCheck when resolving sourced files"`
}

// Run serves MCP requests over stdio until the context is cancelled or the
// transport closes.
func (s *Server) Run(ctx context.Context) error {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "shell-ls",
		Version: s.version,
	}, nil)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "lint_script",
		Description: "Lint a shell script with ShellCheck and return LSP-style diagnostics (0-based ranges, severity 1=error..4=hint).",
	}, s.handleLintScript)

	s.log.Infow("MCP server started", "transport", "stdio")
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) handleLintScript(ctx context.Context, req *sdkmcp.CallToolRequest, input LintScriptInput) (*sdkmcp.CallToolResult, map[string]any, error) {
	doc := document.Document{
		URI:  uri.URI(input.URI),
		Text: input.Script,
	}

	diags := s.linter.Lint(ctx, doc, workspaceFolders(input.WorkspaceFolders))
	if !s.linter.CanLint() {
		return &sdkmcp.CallToolResult{IsError: true}, nil, fmt.Errorf("shellcheck is not available; linting is disabled")
	}

	payload, err := json.Marshal(map[string]any{"diagnostics": diags})
	if err != nil {
		return &sdkmcp.CallToolResult{IsError: true}, nil, err
	}

	return nil, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": string(payload)},
		},
	}, nil
}

// workspaceFolders converts plain directories into the folder shape the
// linter consumes.
func workspaceFolders(dirs []string) []protocol.WorkspaceFolder {
	folders := make([]protocol.WorkspaceFolder, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		folders = append(folders, protocol.WorkspaceFolder{
			URI:  string(uri.File(abs)),
			Name: filepath.Base(abs),
		})
	}
	return folders
}
