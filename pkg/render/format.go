package render

import (
	"strings"

	"github.com/jimtonn/foldout/pkg/errors"
)

// Format is a diagram output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Formats lists every supported output format.
var Formats = []Format{FormatDOT, FormatSVG, FormatPNG}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	allowed := make([]string, len(Formats))
	for i, f := range Formats {
		allowed[i] = string(f)
	}
	if err := errors.ValidateFormat(s, allowed...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || i == len(path)-1 {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer diagram format from %s", path)
	}
	ext := path[i+1:]
	if strings.EqualFold(ext, "gv") {
		return FormatDOT, nil
	}
	return ParseFormat(ext)
}
