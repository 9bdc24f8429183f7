package shellcheck

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/lintwell/shell-ls/internal/document"
)

// workingDirectory picks the directory ShellCheck runs in: the configured
// base directory, else the directory of the document's file URI, else the
// process working directory.
func (l *Linter) workingDirectory(doc document.Document) string {
	if l.cwd != "" {
		return l.cwd
	}
	if p, ok := filePath(string(doc.URI)); ok {
		return filepath.Dir(p)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// sourcePaths lists the directories ShellCheck should search when resolving
// source/. directives: the working directory plus every workspace folder
// that maps to a filesystem path. All candidates are offered in a single
// invocation; the tool itself picks the one that resolves.
func sourcePaths(cwd string, folders []protocol.WorkspaceFolder) []string {
	paths := []string{cwd}
	seen := map[string]bool{cwd: true}

	for _, folder := range folders {
		p, ok := filePath(folder.URI)
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}

	return paths
}

// filePath converts a file:// URI to a filesystem path. Non-file URIs
// (untitled:, vscode-vfs:, ...) have no path to offer.
func filePath(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "file://") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
