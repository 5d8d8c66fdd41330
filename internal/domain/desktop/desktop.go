// Package desktop implements the desktop icon layer: a fixed set of launch
// icons whose positions change only when a drag ends.
package desktop

import (
	"slices"

	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
)

// Desktop holds the icon placements. It is not safe for concurrent use.
type Desktop struct {
	icons []Placement
}

// New creates a desktop from a layout.
func New(l Layout) *Desktop {
	return &Desktop{icons: slices.Clone(l.Icons)}
}

// Placements returns the icons in layout order.
func (d *Desktop) Placements() []Placement {
	return slices.Clone(d.icons)
}

// Move commits a drop coordinate. No snapping, no collision checks.
func (d *Desktop) Move(kind catalog.Kind, x, y int) bool {
	i := d.index(kind)
	if i < 0 {
		return false
	}
	d.icons[i].X = x
	d.icons[i].Y = y
	return true
}

// Activate resolves a double-activated icon into the entry to open. The
// entry carries the icon's label as its title.
func (d *Desktop) Activate(kind catalog.Kind) (catalog.Entry, bool) {
	i := d.index(kind)
	if i < 0 {
		return catalog.Entry{}, false
	}
	e := catalog.Resolve(kind)
	e.Title = d.icons[i].Label
	return e, true
}

func (d *Desktop) index(kind catalog.Kind) int {
	return slices.IndexFunc(d.icons, func(p Placement) bool { return p.Kind == kind })
}
