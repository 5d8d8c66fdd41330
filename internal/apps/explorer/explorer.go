// Package explorer implements the "My Computer" file browser: a cursor over
// the root listing, the Documents folder and the recycle bin.
package explorer

import (
	"github.com/GriffinCanCode/RetroShell/internal/apps/recyclebin"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
	"github.com/GriffinCanCode/RetroShell/internal/shared/id"
)

// Location is the folder the explorer is showing.
type Location string

const (
	Root       Location = "root"
	Documents  Location = "documents"
	RecycleBin Location = "recyclebin"
)

// Root listing names.
const (
	DriveC         = `C:\`
	DriveD         = `D:\`
	DocumentsItem  = "Documents"
	RecycleBinItem = "Recycle Bin"
)

// EmptyDocuments is shown when the Documents folder holds nothing.
const EmptyDocuments = "No files in Documents."

// ItemType distinguishes root entries.
type ItemType string

const (
	ItemDrive  ItemType = "drive"
	ItemFolder ItemType = "folder"
)

// Item is one root entry.
type Item struct {
	Name string   `json:"name"`
	Type ItemType `json:"type"`
}

var rootItems = []Item{
	{Name: DriveC, Type: ItemDrive},
	{Name: DriveD, Type: ItemDrive},
	{Name: DocumentsItem, Type: ItemFolder},
	{Name: RecycleBinItem, Type: ItemFolder},
}

// Explorer holds the current location.
type Explorer struct {
	at Location
}

// New starts at the root listing.
func New() *Explorer {
	return &Explorer{at: Root}
}

// Location returns the current folder.
func (e *Explorer) Location() Location { return e.at }

// Open enters a root entry by name. Drives and unknown names are no-ops, as
// is opening anything away from the root.
func (e *Explorer) Open(name string) bool {
	if e.at != Root {
		return false
	}
	switch name {
	case DocumentsItem:
		e.at = Documents
	case RecycleBinItem:
		e.at = RecycleBin
	default:
		return false
	}
	return true
}

// Back returns to the root listing.
func (e *Explorer) Back() bool {
	if e.at == Root {
		return false
	}
	e.at = Root
	return true
}

// File is one live document in the Documents listing.
type File struct {
	ID   id.DocumentID `json:"id"`
	Name string        `json:"name"`
	Size int           `json:"size"`
}

// View is the rendered explorer. Exactly one of Items, Files or Bin is
// populated, matching Location.
type View struct {
	Location Location         `json:"location"`
	CanBack  bool             `json:"can_back"`
	Items    []Item           `json:"items,omitempty"`
	Files    []File           `json:"files,omitempty"`
	Empty    string           `json:"empty,omitempty"`
	Bin      *recyclebin.View `json:"bin,omitempty"`
}

// Render builds the view for the current location.
func (e *Explorer) Render(live, recycled []vfs.Document) View {
	v := View{Location: e.at, CanBack: e.at != Root}
	switch e.at {
	case Documents:
		v.Files = make([]File, len(live))
		for i, d := range live {
			v.Files[i] = File{ID: d.ID, Name: d.Name, Size: len(d.Content)}
		}
		if len(live) == 0 {
			v.Empty = EmptyDocuments
		}
	case RecycleBin:
		bin := recyclebin.Render(recycled)
		v.Bin = &bin
	default:
		v.Items = append([]Item(nil), rootItems...)
	}
	return v
}
