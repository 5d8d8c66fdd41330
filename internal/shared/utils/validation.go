// Package utils holds input validation shared by the API layers.
package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Size limits, in bytes unless noted.
const (
	MaxJSONSize           = 2 * 1024 * 1024 // request body
	MaxDocumentSize       = 1 * 1024 * 1024 // document content
	MaxStreamMessageSize  = 64 * 1024       // one WebSocket frame
	MaxDocumentNameLength = 255             // runes
	MaxURLLength          = 2048            // runes
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidateString checks a field's length and rejects NUL bytes and broken
// UTF-8.
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if value == "" {
		if required {
			return invalid("%s is required", fieldName)
		}
		return nil
	}
	if !utf8.ValidString(value) {
		return invalid("%s is not valid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return invalid("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return invalid("%s must not exceed %d characters", fieldName, maxLen)
	}
	if strings.ContainsRune(value, 0) {
		return invalid("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidateDocumentName checks a filename as typed into Notepad. Blank names
// pass: saving them is a no-op, not an error.
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if err := ValidateString(name, "name", 1, MaxDocumentNameLength, false); err != nil {
		return err
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return invalid("name contains control characters")
	}
	return nil
}

// ValidateDocumentContent bounds document text.
func ValidateDocumentContent(content string) error {
	if len(content) > MaxDocumentSize {
		return invalid("content size %d bytes exceeds maximum %d bytes", len(content), MaxDocumentSize)
	}
	if !utf8.ValidString(content) {
		return invalid("content is not valid UTF-8")
	}
	return nil
}
