// Package jsonpath extracts named fields from JSON response bodies.
//
// Paths are dot-separated ("state", "app.finalStatus") and resolved
// against JSON objects. Lookup failures produce a response shape error
// that names the attempted path and carries a rendering of the actual
// body, so a malformed response is diagnosable from the error alone.
package jsonpath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"livybatch/internal/apperrors"
)

// Lookup resolves a dot-separated path against a JSON body. An empty
// path returns the decoded root value. The contentType is only used to
// render the body on failure.
func Lookup(op string, body []byte, contentType, path string) (any, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, apperrors.Shape(op, displayPath(path), Render(contentType, body), err)
	}

	value := root
	if path != "" {
		for _, key := range strings.Split(path, ".") {
			obj, ok := value.(map[string]any)
			if !ok {
				return nil, apperrors.Shape(op, displayPath(path), Render(contentType, body),
					fmt.Errorf("segment %q: not an object", key))
			}
			value, ok = obj[key]
			if !ok {
				return nil, apperrors.Shape(op, displayPath(path), Render(contentType, body),
					fmt.Errorf("segment %q: no such field", key))
			}
		}
	}
	return value, nil
}

// String resolves a path expecting a JSON string.
func String(op string, body []byte, contentType, path string) (string, error) {
	value, err := Lookup(op, body, contentType, path)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", apperrors.Shape(op, displayPath(path), Render(contentType, body),
			fmt.Errorf("value at path is %T, not a string", value))
	}
	return s, nil
}

// Int64 resolves a path expecting a JSON number with no fractional part.
func Int64(op string, body []byte, contentType, path string) (int64, error) {
	value, err := Lookup(op, body, contentType, path)
	if err != nil {
		return 0, err
	}
	f, ok := value.(float64)
	if !ok || f != float64(int64(f)) {
		return 0, apperrors.Shape(op, displayPath(path), Render(contentType, body),
			fmt.Errorf("value at path is not an integer"))
	}
	return int64(f), nil
}

// List resolves a path expecting a JSON array.
func List(op string, body []byte, contentType, path string) ([]any, error) {
	value, err := Lookup(op, body, contentType, path)
	if err != nil {
		return nil, err
	}
	list, ok := value.([]any)
	if !ok {
		return nil, apperrors.Shape(op, displayPath(path), Render(contentType, body),
			fmt.Errorf("value at path is %T, not an array", value))
	}
	return list, nil
}

// StringList resolves a path expecting a JSON array of strings.
func StringList(op string, body []byte, contentType, path string) ([]string, error) {
	list, err := List(op, body, contentType, path)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, apperrors.Shape(op, displayPath(path), Render(contentType, body),
				fmt.Errorf("element %d is %T, not a string", i, v))
		}
		out[i] = s
	}
	return out, nil
}

// Render produces a human-readable dump of a response body: indented
// JSON when the content type indicates JSON and the body re-encodes
// cleanly, otherwise the raw body text. Render never fails.
func Render(contentType string, body []byte) string {
	if strings.Contains(contentType, "application/json") {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			return buf.String()
		}
	}
	return string(body)
}

// displayPath renders a path for error messages ("$.app.finalStatus",
// "$" for the root).
func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return "$." + path
}
