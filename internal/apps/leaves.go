package apps

import (
	"fmt"
	"math/rand"

	"github.com/GriffinCanCode/RetroShell/internal/apps/browser"
	"github.com/GriffinCanCode/RetroShell/internal/apps/explorer"
	"github.com/GriffinCanCode/RetroShell/internal/apps/minesweeper"
	"github.com/GriffinCanCode/RetroShell/internal/apps/notepad"
	"github.com/GriffinCanCode/RetroShell/internal/apps/recyclebin"
	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
)

// Body types.
const (
	BodyExplorer    = "explorer"
	BodyNotepad     = "notepad"
	BodyRecycleBin  = "recyclebin"
	BodyBrowser     = "browser"
	BodyMinesweeper = "minesweeper"
	BodyPlaceholder = "placeholder"
)

func unsupported(a Action) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedAction, a.Type)
}

// explorer

type explorerLeaf struct{ e *explorer.Explorer }

func newExplorerLeaf(catalog.Entry, *vfs.Document) Leaf {
	return &explorerLeaf{e: explorer.New()}
}

func (l *explorerLeaf) Apply(a Action) (bool, Effect, error) {
	switch a.Type {
	case ActionOpen:
		return l.e.Open(a.Name), Effect{}, nil
	case ActionBack:
		return l.e.Back(), Effect{}, nil
	case ActionOpenFile, ActionDelete:
		// Files are only listed, and so only actionable, in Documents.
		if l.e.Location() != explorer.Documents {
			return false, Effect{}, nil
		}
		if a.Type == ActionOpenFile {
			return false, Effect{Type: EffectOpenFile, DocumentID: a.DocumentID}, nil
		}
		return false, Effect{Type: EffectDelete, DocumentID: a.DocumentID}, nil
	case ActionRestore, ActionEmptyBin:
		if l.e.Location() != explorer.RecycleBin {
			return false, Effect{}, nil
		}
		if a.Type == ActionRestore {
			return false, Effect{Type: EffectRestore, DocumentID: a.DocumentID}, nil
		}
		return false, Effect{Type: EffectEmptyBin}, nil
	default:
		return false, Effect{}, unsupported(a)
	}
}

func (l *explorerLeaf) Render(f Files) Body {
	return Body{Type: BodyExplorer, View: l.e.Render(f.Live, f.Recycled)}
}

// notepad

type notepadLeaf struct{ b *notepad.Buffer }

func newNotepadLeaf(_ catalog.Entry, file *vfs.Document) Leaf {
	return &notepadLeaf{b: notepad.New(file)}
}

func (l *notepadLeaf) Apply(a Action) (bool, Effect, error) {
	switch a.Type {
	case ActionEdit:
		l.b.Edit(a.Text)
		return true, Effect{}, nil
	case ActionRename:
		l.b.Rename(a.Name)
		return true, Effect{}, nil
	case ActionSave:
		name, text, ok := l.b.Save()
		if !ok {
			return false, Effect{}, nil
		}
		return false, Effect{Type: EffectSave, Name: name, Content: text}, nil
	default:
		return false, Effect{}, unsupported(a)
	}
}

func (l *notepadLeaf) Render(Files) Body {
	return Body{Type: BodyNotepad, View: l.b.View()}
}

// recycle bin

type recycleBinLeaf struct{}

func newRecycleBinLeaf(catalog.Entry, *vfs.Document) Leaf { return recycleBinLeaf{} }

func (recycleBinLeaf) Apply(a Action) (bool, Effect, error) {
	switch a.Type {
	case ActionRestore:
		return false, Effect{Type: EffectRestore, DocumentID: a.DocumentID}, nil
	case ActionEmptyBin:
		return false, Effect{Type: EffectEmptyBin}, nil
	default:
		return false, Effect{}, unsupported(a)
	}
}

func (recycleBinLeaf) Render(f Files) Body {
	return Body{Type: BodyRecycleBin, View: recyclebin.Render(f.Recycled)}
}

// browser

type browserLeaf struct{ b *browser.Browser }

func newBrowserLeaf(catalog.Entry, *vfs.Document) Leaf {
	return &browserLeaf{b: browser.New()}
}

func (l *browserLeaf) Apply(a Action) (bool, Effect, error) {
	switch a.Type {
	case ActionInput:
		l.b.SetInput(a.URL)
		return true, Effect{}, nil
	case ActionNavigate:
		if a.URL != "" {
			l.b.SetInput(a.URL)
		}
		if _, err := l.b.Go(); err != nil {
			return false, Effect{}, fmt.Errorf("%w: %w", ErrBadAction, err)
		}
		return true, Effect{}, nil
	default:
		return false, Effect{}, unsupported(a)
	}
}

func (l *browserLeaf) Render(Files) Body {
	return Body{Type: BodyBrowser, View: l.b.View()}
}

// minesweeper

type minesweeperLeaf struct{ b *minesweeper.Board }

func newMinesweeperLeaf(rng *rand.Rand) Leaf {
	return &minesweeperLeaf{b: minesweeper.New(rng)}
}

func (l *minesweeperLeaf) Apply(a Action) (bool, Effect, error) {
	switch a.Type {
	case ActionReveal:
		return l.b.Reveal(a.Row, a.Col), Effect{}, nil
	case ActionFlag:
		return l.b.ToggleFlag(a.Row, a.Col), Effect{}, nil
	case ActionNewGame:
		l.b.NewGame()
		return true, Effect{}, nil
	default:
		return false, Effect{}, unsupported(a)
	}
}

func (l *minesweeperLeaf) Render(Files) Body {
	return Body{Type: BodyMinesweeper, View: l.b.View()}
}

// placeholder

// Placeholder is the body of kinds with no dedicated leaf.
type Placeholder struct {
	Message string `json:"message"`
}

type placeholderLeaf struct{ title string }

func (l *placeholderLeaf) Apply(a Action) (bool, Effect, error) {
	return false, Effect{}, unsupported(a)
}

func (l *placeholderLeaf) Render(Files) Body {
	return Body{Type: BodyPlaceholder, View: Placeholder{Message: fmt.Sprintf("Welcome to %s!", l.title)}}
}
