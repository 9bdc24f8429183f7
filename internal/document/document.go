// Package document models the text buffer handed to the linter by a host.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.lsp.dev/uri"
)

// Document is a shell script buffer. Text holds the current content, which
// may differ from whatever is on disk; URI is optional and only used to
// derive a working directory for resolving sourced files.
type Document struct {
	URI  uri.URI
	Text string
}

// FromPath reads a script from disk.
func FromPath(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, err
	}

	return Document{
		URI:  uri.File(abs),
		Text: string(data),
	}, nil
}

// Line returns the 0-indexed line i of the document without its line ending,
// or "" when i is out of range.
func (d Document) Line(i int) string {
	lines := strings.Split(d.Text, "\n")
	if i < 0 || i >= len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[i], "\r")
}
