// Package notepad implements the text editor buffer.
package notepad

import (
	"strings"

	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
)

// Buffer is the editor state: a filename field and the text area.
type Buffer struct {
	filename string
	text     string
}

// New creates a buffer, seeded from file when one is attached.
func New(file *vfs.Document) *Buffer {
	if file == nil {
		return &Buffer{}
	}
	return &Buffer{filename: file.Name, text: file.Content}
}

// Edit replaces the text.
func (b *Buffer) Edit(text string) { b.text = text }

// Rename replaces the filename field. The raw value is kept until save.
func (b *Buffer) Rename(name string) { b.filename = name }

// Save returns the trimmed filename and the text to write. It reports false
// when the filename is blank.
func (b *Buffer) Save() (name, text string, ok bool) {
	name = strings.TrimSpace(b.filename)
	if name == "" {
		return "", "", false
	}
	return name, b.text, true
}

// View is the rendered editor.
type View struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
	CanSave  bool   `json:"can_save"`
}

func (b *Buffer) View() View {
	return View{
		Filename: b.filename,
		Text:     b.text,
		CanSave:  strings.TrimSpace(b.filename) != "",
	}
}
