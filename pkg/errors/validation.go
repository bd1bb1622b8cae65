package errors

import (
	"strings"
	"unicode"
)

// ValidateFunctionName validates a function name from an exclusion list.
// It rejects entries that could never match a cflow symbol so that typos
// in exclusion files surface early instead of silently matching nothing.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No whitespace of any kind
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateFunctionName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "function name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "function name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "function name contains control characters: %q", name)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "function name contains whitespace: %q", name)
		}
	}

	return nil
}

// ValidateOutputBase validates the base name used as the prefix for
// generated artifacts (base0.dot, base0.svg, ...). A relative directory
// prefix is allowed; the basename itself must be a usable filename stem.
//
// Validation rules:
//   - Base cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not end with a path separator
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeInvalidPath, "output base cannot be empty")
	}

	const maxBaseLength = 500
	if len(base) > maxBaseLength {
		return New(ErrCodeInvalidPath, "output base too long (max %d characters)", maxBaseLength)
	}

	for _, r := range base {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output base contains invalid characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, "\\") {
		return New(ErrCodeInvalidPath, "output base must not end with a path separator")
	}

	return nil
}

// ValidateSourcePath validates a source file path passed on the command
// line or through config. Existence and readability are checked later at
// open time; this guards against unusable path strings.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "source path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "source path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "source path contains invalid characters")
		}
	}

	return nil
}
