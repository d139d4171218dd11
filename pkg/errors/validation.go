package errors

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidatePath validates a document path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must name a file, not end in a separator
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file: %q", path)
	}

	return nil
}

// ValidateColumnTitle validates a column title entered by a user.
// Titles may contain spaces but must have at least one visible character,
// fit on one line and be at most 128 characters.
func ValidateColumnTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidColumn, "column title cannot be empty")
	}

	if utf8.RuneCountInString(title) > 128 {
		return New(ErrCodeInvalidColumn, "column title too long (max 128 characters)")
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column title contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed. The comparison is
// case-sensitive; callers normalize first.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
