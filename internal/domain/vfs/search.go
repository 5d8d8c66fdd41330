package vfs

import (
	"errors"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
)

// ErrBadPattern is returned for malformed glob patterns.
var ErrBadPattern = errors.New("invalid name pattern")

// Find returns live documents in folder whose name matches a glob
// pattern such as "*.txt" or "{notes,todo}*". An empty pattern matches
// everything.
func (s *Store) Find(folder Folder, pattern string) ([]Document, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return s.List(folder), nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, ErrBadPattern
	}

	out := []Document{}
	for _, doc := range s.List(folder) {
		if ok, _ := doublestar.Match(pattern, doc.Name); ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Info describes a document's content.
type Info struct {
	Size      int    `json:"size"`
	Lines     int    `json:"lines"`
	MIMEType  string `json:"mime_type"`
	Extension string `json:"extension"`
	IsText    bool   `json:"is_text"`
}

// Describe sniffs the content type of doc.
func Describe(doc Document) Info {
	mtype := mimetype.Detect([]byte(doc.Content))

	lines := 0
	if doc.Content != "" {
		lines = strings.Count(doc.Content, "\n") + 1
	}

	return Info{
		Size:      len(doc.Content),
		Lines:     lines,
		MIMEType:  mtype.String(),
		Extension: mtype.Extension(),
		IsText:    strings.HasPrefix(mtype.String(), "text/") || mtype.Is("application/json"),
	}
}
