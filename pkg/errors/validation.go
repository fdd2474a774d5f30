package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a content node identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No whitespace
//   - Maximum length of 256 characters
//
// Callers that synthesize IDs (e.g. from document headings) should sanitize
// before constructing nodes; this check is the last line of defense.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidContent, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidContent, "node ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidContent, "node ID contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidContent, "node ID cannot contain whitespace")
		}
	}

	return nil
}

// ValidateTemplateName validates a template name from a catalog or a content
// attribute. Names are simple identifiers: lowercase letters, digits, dashes
// and underscores.
func ValidateTemplateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTemplate, "template name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidTemplate, "template name too long (max 128 characters)")
	}

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return New(ErrCodeInvalidTemplate, "invalid template name: %q", name)
		}
	}

	return nil
}

// ValidatePath validates a file path supplied on the command line for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
