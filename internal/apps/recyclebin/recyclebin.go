// Package recyclebin renders the recycle bin listing.
package recyclebin

import (
	"fmt"

	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
	"github.com/GriffinCanCode/RetroShell/internal/shared/id"
)

// EmptyMessage is shown when the bin holds nothing.
const EmptyMessage = "Recycle Bin is empty."

// Item is one recycled document. Content is left out of the listing.
type Item struct {
	ID   id.DocumentID `json:"id"`
	Name string        `json:"name"`
}

// View is the rendered bin.
type View struct {
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Items    []Item `json:"items"`
	Empty    string `json:"empty,omitempty"`
	CanEmpty bool   `json:"can_empty"`
}

// Render builds the view from the bin's documents, in bin order.
func Render(recycled []vfs.Document) View {
	v := View{
		Label:    fmt.Sprintf("Files in Recycle Bin: %d", len(recycled)),
		Count:    len(recycled),
		Items:    make([]Item, len(recycled)),
		CanEmpty: len(recycled) > 0,
	}
	for i, d := range recycled {
		v.Items[i] = Item{ID: d.ID, Name: d.Name}
	}
	if len(recycled) == 0 {
		v.Empty = EmptyMessage
	}
	return v
}
