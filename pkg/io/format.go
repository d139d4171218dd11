package io

import (
	"path/filepath"
	"strings"

	"github.com/jimtonn/foldout/pkg/errors"
)

// Format identifies a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatTOML     Format = "toml"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ReadableFormats lists the formats [Read] accepts.
var ReadableFormats = []Format{FormatJSON, FormatTOML, FormatYAML}

// WritableFormats lists the formats [Write] accepts.
var WritableFormats = []Format{FormatJSON, FormatTOML, FormatYAML, FormatMarkdown}

var extensions = map[string]Format{
	".json":     FormatJSON,
	".toml":     FormatTOML,
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q (use .json, .toml, .yaml or .md)", path)
}

// ParseFormat parses a format name as given on a command line. "yml" and
// "md" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatTOML, FormatYAML, FormatMarkdown:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", name)
	}
}

func names(formats []Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
