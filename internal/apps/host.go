// Package apps hosts the leaf applications that render inside windows. A
// Host maps each catalog kind to a leaf factory; kinds without a factory
// get a placeholder body.
package apps

import (
	"errors"
	"math/rand"
	"time"

	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
	"github.com/GriffinCanCode/RetroShell/internal/shared/id"
)

var (
	// ErrUnsupportedAction is returned when a leaf does not understand an
	// action type.
	ErrUnsupportedAction = errors.New("unsupported leaf action")
	// ErrBadAction is returned when an action's arguments are unusable.
	ErrBadAction = errors.New("bad leaf action")
)

// ActionType names a leaf-level gesture.
type ActionType string

const (
	ActionReveal   ActionType = "reveal"
	ActionFlag     ActionType = "flag"
	ActionNewGame  ActionType = "new_game"
	ActionEdit     ActionType = "edit"
	ActionRename   ActionType = "rename"
	ActionSave     ActionType = "save"
	ActionInput    ActionType = "input"
	ActionNavigate ActionType = "navigate"
	ActionOpen     ActionType = "open"
	ActionBack     ActionType = "back"
	ActionOpenFile ActionType = "open_file"
	ActionDelete   ActionType = "delete"
	ActionRestore  ActionType = "restore"
	ActionEmptyBin ActionType = "empty_bin"
)

// Action is a gesture aimed at a window's body. Only the fields relevant to
// Type are read.
type Action struct {
	Type       ActionType    `json:"type"`
	Row        int           `json:"row,omitempty"`
	Col        int           `json:"col,omitempty"`
	Text       string        `json:"text,omitempty"`
	Name       string        `json:"name,omitempty"`
	URL        string        `json:"url,omitempty"`
	DocumentID id.DocumentID `json:"document_id,omitempty"`
}

// EffectType names a request a leaf makes of the shell.
type EffectType string

const (
	EffectNone     EffectType = ""
	EffectSave     EffectType = "save"
	EffectOpenFile EffectType = "open_file"
	EffectDelete   EffectType = "delete"
	EffectRestore  EffectType = "restore"
	EffectEmptyBin EffectType = "empty_bin"
)

// Effect asks the shell to touch state a leaf does not own.
type Effect struct {
	Type       EffectType
	Name       string
	Content    string
	DocumentID id.DocumentID
}

// Files is the read-only document data leaves render from.
type Files struct {
	Live     []vfs.Document
	Recycled []vfs.Document
}

// Body is a rendered leaf, tagged with the kind of view it carries.
type Body struct {
	Type string `json:"type"`
	View any    `json:"view"`
}

// Leaf is the state behind one window's body. It lives exactly as long as
// its window instance.
type Leaf interface {
	// Apply handles an action. It reports whether leaf state changed and
	// any effect the shell must carry out.
	Apply(a Action) (changed bool, eff Effect, err error)
	Render(files Files) Body
}

// Factory creates the leaf for a freshly opened instance.
type Factory func(entry catalog.Entry, file *vfs.Document) Leaf

// Host builds leaves by kind.
type Host struct {
	factories map[catalog.Kind]Factory
}

// Option configures a Host.
type Option func(*hostConfig)

type hostConfig struct {
	rand func() *rand.Rand
}

// WithRand sets the source of randomness handed to each new minesweeper
// board.
func WithRand(fn func() *rand.Rand) Option {
	return func(c *hostConfig) { c.rand = fn }
}

// NewHost registers the built-in leaves.
func NewHost(opts ...Option) *Host {
	cfg := hostConfig{
		rand: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Host{factories: map[catalog.Kind]Factory{
		catalog.MyComputer:  newExplorerLeaf,
		catalog.Notepad:     newNotepadLeaf,
		catalog.RecycleBin:  newRecycleBinLeaf,
		catalog.Internet:    newBrowserLeaf,
		catalog.Minesweeper: func(catalog.Entry, *vfs.Document) Leaf { return newMinesweeperLeaf(cfg.rand()) },
	}}
}

// Register installs or replaces the factory for kind.
func (h *Host) Register(kind catalog.Kind, f Factory) {
	h.factories[kind] = f
}

// New creates the leaf for entry. Kinds without a factory get a placeholder.
func (h *Host) New(entry catalog.Entry, file *vfs.Document) Leaf {
	if f, ok := h.factories[entry.Kind]; ok {
		return f(entry, file)
	}
	return &placeholderLeaf{title: entry.Title}
}
