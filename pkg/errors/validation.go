package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds symbol labels; the longest known label is a short
// LaTeX command.
const maxLabelLength = 32

// ValidateLabel validates a symbol label received from a classifier or an
// input file.
//
// The validation rules are:
//   - No empty labels
//   - No whitespace or control characters
//   - Maximum length of 32 characters
//   - A leading backslash must be followed by letters only (a LaTeX command)
//
// Whether the label is known to the symbol table is checked separately.
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidLabel, "label %q contains whitespace or control characters", label)
		}
	}

	if cmd, ok := strings.CutPrefix(label, `\`); ok {
		if cmd == "" {
			return New(ErrCodeInvalidLabel, "label %q is a bare backslash", label)
		}
		for _, r := range cmd {
			if !unicode.IsLetter(r) {
				return New(ErrCodeInvalidLabel, "label %q is not a LaTeX command", label)
			}
		}
	}

	return nil
}

// ValidateBox validates bounding box coordinates.
// A box must have a positive width and height and must not start at a
// negative coordinate.
func ValidateBox(left, top, right, bottom int) error {
	if left < 0 || top < 0 {
		return New(ErrCodeInvalidBox, "box (%d, %d, %d, %d) has negative origin", left, top, right, bottom)
	}
	if right <= left || bottom <= top {
		return New(ErrCodeInvalidBox, "box (%d, %d, %d, %d) has no area", left, top, right, bottom)
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a
// dataset manifest.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}

// ValidateRelativePath is like [ValidatePath] but additionally rejects
// absolute paths and parent directory traversal. Dataset manifests refer to
// images relative to the manifest file.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
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
