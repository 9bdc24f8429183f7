package shellcheck

import (
	"fmt"
)

// Report is a ShellCheck --format=json1 payload after schema validation.
type Report struct {
	Comments []ToolComment
}

// ToolComment is one issue reported by ShellCheck. Positions are 1-based.
type ToolComment struct {
	File      string
	Line      int
	EndLine   int
	Column    int
	EndColumn int
	Level     string
	Code      int
	Message   string

	// Fix is the tool's suggested replacement. It is carried through as
	// decoded but never interpreted here.
	Fix map[string]any
}

// SchemaError is a schema validation rejection. The whole payload is
// rejected on the first deviation; no partially-valid report is ever
// returned.
type SchemaError struct {
	// Field locates the offending value, e.g. "comments[2].line".
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid shellcheck output: %s: %s", e.Field, e.Reason)
}

// ValidateReport checks an untrusted decoded-JSON value against the shape
// ShellCheck promises for json1 output and converts it to typed data. Any
// missing field, retyped field, or malformed element rejects the entire
// value with a *SchemaError.
func ValidateReport(v any) (*Report, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaError{Field: "report", Reason: "not an object"}
	}

	raw, ok := obj["comments"]
	if !ok {
		return nil, &SchemaError{Field: "comments", Reason: "missing"}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &SchemaError{Field: "comments", Reason: "not an array"}
	}

	comments := make([]ToolComment, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, &SchemaError{
				Field:  fmt.Sprintf("comments[%d]", i),
				Reason: "not an object",
			}
		}

		c, err := validateComment(m, fmt.Sprintf("comments[%d]", i))
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return &Report{Comments: comments}, nil
}

func validateComment(m map[string]any, path string) (ToolComment, error) {
	var c ToolComment
	var err error

	if c.File, err = stringField(m, path, "file"); err != nil {
		return c, err
	}
	if c.Line, err = intField(m, path, "line"); err != nil {
		return c, err
	}
	if c.EndLine, err = intField(m, path, "endLine"); err != nil {
		return c, err
	}
	if c.Column, err = intField(m, path, "column"); err != nil {
		return c, err
	}
	if c.EndColumn, err = intField(m, path, "endColumn"); err != nil {
		return c, err
	}
	if c.Level, err = stringField(m, path, "level"); err != nil {
		return c, err
	}
	if c.Code, err = intField(m, path, "code"); err != nil {
		return c, err
	}
	if c.Message, err = stringField(m, path, "message"); err != nil {
		return c, err
	}

	// fix must be present but may be null; when set it must be an object.
	fix, ok := m["fix"]
	if !ok {
		return c, &SchemaError{Field: path + ".fix", Reason: "missing"}
	}
	switch f := fix.(type) {
	case nil:
	case map[string]any:
		c.Fix = f
	default:
		return c, &SchemaError{Field: path + ".fix", Reason: "not null or an object"}
	}

	return c, nil
}

func stringField(m map[string]any, path, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", &SchemaError{Field: path + "." + key, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Field: path + "." + key, Reason: "not a string"}
	}
	return s, nil
}

func intField(m map[string]any, path, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, &SchemaError{Field: path + "." + key, Reason: "missing"}
	}
	// encoding/json decodes all numbers into float64.
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	}
	return 0, &SchemaError{Field: path + "." + key, Reason: "not a number"}
}
