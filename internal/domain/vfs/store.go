package vfs

import (
	"slices"
	"strings"
	"time"

	"github.com/GriffinCanCode/RetroShell/internal/shared/id"
)

// Folder is a fixed document location.
type Folder string

// Documents is the only writable folder.
const Documents Folder = "Documents"

// Document is a text file held in memory.
type Document struct {
	ID        id.DocumentID `json:"id"`
	Name      string        `json:"name"`
	Content   string        `json:"content"`
	Folder    Folder        `json:"folder"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SaveResult reports what Save did.
type SaveResult int

const (
	// SaveRejected means the name was empty and nothing was written.
	SaveRejected SaveResult = iota
	// SaveCreated means a new document was added.
	SaveCreated
	// SaveUpdated means an existing document's content was replaced.
	SaveUpdated
)

func (r SaveResult) String() string {
	switch r {
	case SaveCreated:
		return "created"
	case SaveUpdated:
		return "updated"
	default:
		return "rejected"
	}
}

// Store owns the live documents and the recycle bin. A document ID is held
// by exactly one of the two collections at any time.
//
// Store is not safe for concurrent use; the shell serializes access.
type Store struct {
	live  []*Document
	bin   []*Document
	newID func() id.DocumentID
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides document ID generation.
func WithIDFunc(fn func() id.DocumentID) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		newID: id.NewDocumentID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save upserts a document in Documents keyed by its trimmed name. An
// existing document keeps its ID and folder; only content changes.
func (s *Store) Save(name, content string) (Document, SaveResult) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Document{}, SaveRejected
	}

	now := s.now()
	for _, doc := range s.live {
		if doc.Name == name && doc.Folder == Documents {
			doc.Content = content
			doc.UpdatedAt = now
			return *doc, SaveUpdated
		}
	}

	doc := &Document{
		ID:        s.newID(),
		Name:      name,
		Content:   content,
		Folder:    Documents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.live = append(s.live, doc)
	return *doc, SaveCreated
}

// Delete moves a live document to the recycle bin unchanged. It reports
// false when the document is not live.
func (s *Store) Delete(docID id.DocumentID) bool {
	i := indexOf(s.live, docID)
	if i < 0 {
		return false
	}
	doc := s.live[i]
	s.live = slices.Delete(s.live, i, i+1)
	s.bin = append(s.bin, doc)
	return true
}

// Restore moves a recycled document back to the end of the live set. It
// reports false when the document is not in the bin.
func (s *Store) Restore(docID id.DocumentID) bool {
	i := indexOf(s.bin, docID)
	if i < 0 {
		return false
	}
	doc := s.bin[i]
	s.bin = slices.Delete(s.bin, i, i+1)
	s.live = append(s.live, doc)
	return true
}

// EmptyRecycleBin discards every recycled document and returns how many
// were purged.
func (s *Store) EmptyRecycleBin() int {
	n := len(s.bin)
	s.bin = nil
	return n
}

// List returns copies of the live documents in folder, in store order.
func (s *Store) List(folder Folder) []Document {
	out := make([]Document, 0, len(s.live))
	for _, doc := range s.live {
		if doc.Folder == folder {
			out = append(out, *doc)
		}
	}
	return out
}

// Recycled returns copies of the recycle bin contents, in bin order.
func (s *Store) Recycled() []Document {
	out := make([]Document, len(s.bin))
	for i, doc := range s.bin {
		out[i] = *doc
	}
	return out
}

// Get returns a live document by ID.
func (s *Store) Get(docID id.DocumentID) (Document, bool) {
	if i := indexOf(s.live, docID); i >= 0 {
		return *s.live[i], true
	}
	return Document{}, false
}

// GetRecycled returns a recycled document by ID.
func (s *Store) GetRecycled(docID id.DocumentID) (Document, bool) {
	if i := indexOf(s.bin, docID); i >= 0 {
		return *s.bin[i], true
	}
	return Document{}, false
}

// Stats returns collection sizes.
func (s *Store) Stats() Stats {
	return Stats{Live: len(s.live), Recycled: len(s.bin)}
}

// Stats contains store statistics
type Stats struct {
	Live     int `json:"live"`
	Recycled int `json:"recycled"`
}

func indexOf(docs []*Document, docID id.DocumentID) int {
	return slices.IndexFunc(docs, func(d *Document) bool { return d.ID == docID })
}
