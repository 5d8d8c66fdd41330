package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateString(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		required bool
		wantErr  bool
	}{
		{"empty optional", "", false, false},
		{"empty required", "", true, true},
		{"ok", "abc", true, false},
		{"too short", "a", true, true},
		{"too long", strings.Repeat("x", 11), true, true},
		{"nul byte", "a\x00b", true, true},
		{"bad utf8", "a\xffb", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString(tt.value, "field", 2, 10, tt.required)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDocumentName(t *testing.T) {
	assert.NoError(t, ValidateDocumentName("notes.txt"))
	assert.NoError(t, ValidateDocumentName("   "), "blank names are a no-op downstream")
	assert.NoError(t, ValidateDocumentName("résumé.txt"))

	assert.ErrorIs(t, ValidateDocumentName("a\nb"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateDocumentName(strings.Repeat("n", MaxDocumentNameLength+1)), ErrInvalidInput)
}

func TestValidateDocumentContent(t *testing.T) {
	assert.NoError(t, ValidateDocumentContent(""))
	assert.NoError(t, ValidateDocumentContent("line 1\nline 2\t"))

	assert.ErrorIs(t, ValidateDocumentContent(strings.Repeat("x", MaxDocumentSize+1)), ErrInvalidInput)
	assert.ErrorIs(t, ValidateDocumentContent("\xfe"), ErrInvalidInput)
}
