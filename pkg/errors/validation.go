package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds element and flow identifiers.
const maxIDLength = 256

// ValidateElementID validates a flow element or sequence flow identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidProcess, "element id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidProcess, "element id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProcess, "element id %q contains control characters", id)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidProcess, "element id %q contains whitespace", id)
		}
	}

	return nil
}

// ValidateURL validates a backend URL string.
// It ensures the URL uses one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use one of the schemes %v", schemes)
}
