package shell

import (
	"errors"

	"github.com/GriffinCanCode/RetroShell/internal/apps"
	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
	"github.com/GriffinCanCode/RetroShell/internal/domain/window"
	"github.com/GriffinCanCode/RetroShell/internal/shared/id"
	"github.com/GriffinCanCode/RetroShell/internal/shared/utils"
)

var (
	// ErrUnknownIntent is returned for an intent type the shell does not know.
	ErrUnknownIntent = errors.New("unknown intent")
	// ErrInvalidIntent is returned when an intent's arguments are unusable.
	ErrInvalidIntent = errors.New("invalid intent")
	// ErrTooManyWindows is returned when opening another ad-hoc kind would
	// exceed the session's cap.
	ErrTooManyWindows = errors.New("too many ad-hoc windows")
	// ErrNotDraggable is returned when a drag starts on a window that is
	// closed or maximized.
	ErrNotDraggable = errors.New("window cannot be dragged")
)

// IntentType names a user gesture.
type IntentType string

const (
	IntentOpen            IntentType = "open"
	IntentClose           IntentType = "close"
	IntentFocus           IntentType = "focus"
	IntentMinimize        IntentType = "minimize"
	IntentMaximize        IntentType = "maximize"
	IntentMove            IntentType = "move"
	IntentTaskbar         IntentType = "taskbar"
	IntentToggleStartMenu IntentType = "toggle_start_menu"
	IntentCloseStartMenu  IntentType = "close_start_menu"
	IntentMoveIcon        IntentType = "move_icon"
	IntentSave            IntentType = "save"
	IntentDelete          IntentType = "delete"
	IntentRestore         IntentType = "restore"
	IntentEmptyBin        IntentType = "empty_bin"
	IntentLeaf            IntentType = "leaf"
)

// Source says where an open gesture came from. Desktop opens take the
// icon's label as the window title.
type Source string

const (
	SourceDesktop   Source = "desktop"
	SourceStartMenu Source = "start_menu"
)

// Intent is one gesture. Only the fields relevant to Type are read.
type Intent struct {
	Type       IntentType    `json:"type"`
	Kind       catalog.Kind  `json:"kind,omitempty"`
	Source     Source        `json:"source,omitempty"`
	X          int           `json:"x,omitempty"`
	Y          int           `json:"y,omitempty"`
	Name       string        `json:"name,omitempty"`
	Content    string        `json:"content,omitempty"`
	DocumentID id.DocumentID `json:"document_id,omitempty"`
	Action     *apps.Action  `json:"action,omitempty"`
}

// Result reports the outcome of a dispatched intent. Applied is false for
// no-ops such as focusing a kind that is not open.
type Result struct {
	Applied  bool                 `json:"applied"`
	Document *vfs.Document        `json:"document,omitempty"`
	Purged   int                  `json:"purged,omitempty"`
	Taskbar  window.TaskbarAction `json:"taskbar,omitempty"`
}

func (in Intent) needsKind() bool {
	switch in.Type {
	case IntentOpen, IntentClose, IntentFocus, IntentMinimize, IntentMaximize,
		IntentMove, IntentTaskbar, IntentMoveIcon, IntentLeaf:
		return true
	default:
		return false
	}
}

// validate bounds user-supplied text.
func (in Intent) validate() error {
	if err := utils.ValidateDocumentName(in.Name); err != nil {
		return err
	}
	if err := utils.ValidateDocumentContent(in.Content); err != nil {
		return err
	}
	if a := in.Action; a != nil {
		if err := utils.ValidateDocumentName(a.Name); err != nil {
			return err
		}
		if err := utils.ValidateDocumentContent(a.Text); err != nil {
			return err
		}
		if err := utils.ValidateString(a.URL, "url", 0, utils.MaxURLLength, false); err != nil {
			return err
		}
	}
	return nil
}
