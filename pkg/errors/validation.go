package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds component identifiers.
const MaxIDLength = 128

// ValidateID validates a component identifier.
//
// Identifiers appear in warnings, routing output and SVG attributes, so the
// rules are conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No quotes or angle brackets
//   - Maximum length of MaxIDLength characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDiagram, "component id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidDiagram, "component id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDiagram, "component id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, `"'<>&`) {
		return New(ErrCodeInvalidDiagram, "component id %q contains quotes or markup characters", id)
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// The HTTP API uses it to keep diagram requests inside the served directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
