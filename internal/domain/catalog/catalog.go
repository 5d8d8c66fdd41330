// Package catalog defines the fixed set of launchable application kinds
// and their static metadata.
package catalog

import (
	"errors"
	"regexp"
	"strings"
)

// Kind tags an application type. Known kinds are enumerated below; any
// other well-formed value is an ad-hoc kind hosted with a placeholder body.
type Kind string

const (
	MyComputer  Kind = "mycomputer"
	Notepad     Kind = "notepad"
	Multimedia  Kind = "multimedia"
	Minesweeper Kind = "minesweeper"
	Internet    Kind = "ie"
	RecycleBin  Kind = "recyclebin"
)

// Icon names a presentational glyph the front end knows how to draw.
type Icon string

const (
	IconMonitor Icon = "monitor"
	IconFile    Icon = "file"
	IconMusic   Icon = "music"
	IconRocket  Icon = "rocket"
	IconGlobe   Icon = "globe"
	IconTrash   Icon = "trash"
	IconWindow  Icon = "window"
)

// Entry is the immutable descriptor of a launchable application.
type Entry struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Icon  Icon   `json:"icon"`
}

var (
	ErrEmptyKind   = errors.New("empty application kind")
	ErrInvalidKind = errors.New("invalid application kind")
)

var kindPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,31}$`)

var table = map[Kind]Entry{
	MyComputer:  {Kind: MyComputer, Title: "My Computer", Icon: IconMonitor},
	Notepad:     {Kind: Notepad, Title: "Notepad", Icon: IconFile},
	Multimedia:  {Kind: Multimedia, Title: "Multimedia", Icon: IconMusic},
	Minesweeper: {Kind: Minesweeper, Title: "Minesweeper", Icon: IconRocket},
	Internet:    {Kind: Internet, Title: "Internet Explorer", Icon: IconGlobe},
	RecycleBin:  {Kind: RecycleBin, Title: "Recycle Bin", Icon: IconTrash},
}

var startMenu = []Kind{MyComputer, Notepad, Minesweeper, Internet}

// Parse normalizes s into a Kind. Unknown but well-formed values are
// accepted as ad-hoc kinds.
func Parse(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrEmptyKind
	}
	if !kindPattern.MatchString(s) {
		return "", ErrInvalidKind
	}
	return Kind(s), nil
}

// Known reports whether k is one of the enumerated kinds.
func (k Kind) Known() bool {
	_, ok := table[k]
	return ok
}

func (k Kind) String() string { return string(k) }

// Lookup returns the static entry for k.
func Lookup(k Kind) (Entry, bool) {
	e, ok := table[k]
	return e, ok
}

// Resolve returns the entry for k, or an ad-hoc entry titled after the
// kind itself when k is not enumerated.
func Resolve(k Kind) Entry {
	if e, ok := table[k]; ok {
		return e
	}
	return Entry{Kind: k, Title: string(k), Icon: IconWindow}
}

// StartMenu lists the entries offered by the start menu, in menu order.
func StartMenu() []Entry {
	out := make([]Entry, len(startMenu))
	for i, k := range startMenu {
		out[i] = table[k]
	}
	return out
}

// All returns every enumerated entry in a stable order.
func All() []Entry {
	kinds := []Kind{MyComputer, Notepad, Multimedia, Minesweeper, Internet, RecycleBin}
	out := make([]Entry, len(kinds))
	for i, k := range kinds {
		out[i] = table[k]
	}
	return out
}
