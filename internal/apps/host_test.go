package apps

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/RetroShell/internal/apps/browser"
	"github.com/GriffinCanCode/RetroShell/internal/apps/explorer"
	"github.com/GriffinCanCode/RetroShell/internal/apps/minesweeper"
	"github.com/GriffinCanCode/RetroShell/internal/apps/notepad"
	"github.com/GriffinCanCode/RetroShell/internal/apps/recyclebin"
	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
)

func newTestHost() *Host {
	return NewHost(WithRand(func() *rand.Rand { return rand.New(rand.NewSource(42)) }))
}

func entry(k catalog.Kind) catalog.Entry { return catalog.Resolve(k) }

func TestHostBodyTypes(t *testing.T) {
	h := newTestHost()
	tests := []struct {
		kind catalog.Kind
		want string
	}{
		{catalog.MyComputer, BodyExplorer},
		{catalog.Notepad, BodyNotepad},
		{catalog.RecycleBin, BodyRecycleBin},
		{catalog.Internet, BodyBrowser},
		{catalog.Minesweeper, BodyMinesweeper},
		{catalog.Multimedia, BodyPlaceholder},
		{"paint", BodyPlaceholder},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			body := h.New(entry(tt.kind), nil).Render(Files{})
			assert.Equal(t, tt.want, body.Type)
		})
	}
}

func TestPlaceholderMessage(t *testing.T) {
	h := newTestHost()

	body := h.New(entry(catalog.Multimedia), nil).Render(Files{})
	assert.Equal(t, Placeholder{Message: "Welcome to Multimedia!"}, body.View)

	body = h.New(entry("paint"), nil).Render(Files{})
	assert.Equal(t, Placeholder{Message: "Welcome to paint!"}, body.View)

	_, _, err := h.New(entry("paint"), nil).Apply(Action{Type: ActionReveal})
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func TestNotepadLeafSave(t *testing.T) {
	h := newTestHost()
	leaf := h.New(entry(catalog.Notepad), &vfs.Document{Name: "a.txt", Content: "x"})

	changed, _, err := leaf.Apply(Action{Type: ActionEdit, Text: "hello"})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, eff, err := leaf.Apply(Action{Type: ActionSave})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Effect{Type: EffectSave, Name: "a.txt", Content: "hello"}, eff)

	_, _, err = leaf.Apply(Action{Type: ActionRename, Name: "  "})
	require.NoError(t, err)
	_, eff, err = leaf.Apply(Action{Type: ActionSave})
	require.NoError(t, err)
	assert.Equal(t, EffectNone, eff.Type, "blank name saves nothing")

	body := leaf.Render(Files{})
	assert.Equal(t, notepad.View{Filename: "  ", Text: "hello"}, body.View)
}

func TestExplorerLeaf(t *testing.T) {
	h := newTestHost()
	leaf := h.New(entry(catalog.MyComputer), nil)

	changed, _, err := leaf.Apply(Action{Type: ActionOpen, Name: explorer.DriveC})
	require.NoError(t, err)
	assert.False(t, changed)

	changed, _, err = leaf.Apply(Action{Type: ActionOpen, Name: explorer.DocumentsItem})
	require.NoError(t, err)
	assert.True(t, changed)

	live := []vfs.Document{{ID: "doc_1", Name: "a.txt"}}
	view := leaf.Render(Files{Live: live}).View.(explorer.View)
	assert.Equal(t, explorer.Documents, view.Location)
	assert.Len(t, view.Files, 1)

	_, eff, err := leaf.Apply(Action{Type: ActionOpenFile, DocumentID: "doc_1"})
	require.NoError(t, err)
	assert.Equal(t, Effect{Type: EffectOpenFile, DocumentID: "doc_1"}, eff)

	_, eff, err = leaf.Apply(Action{Type: ActionDelete, DocumentID: "doc_1"})
	require.NoError(t, err)
	assert.Equal(t, EffectDelete, eff.Type)

	_, _, err = leaf.Apply(Action{Type: ActionFlag})
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func TestExplorerActionsFollowLocation(t *testing.T) {
	h := newTestHost()
	leaf := h.New(entry(catalog.MyComputer), nil)

	none := func(a Action) {
		t.Helper()
		changed, eff, err := leaf.Apply(a)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, Effect{}, eff, "%s", a.Type)
	}

	// Root lists drives and folders, not files.
	none(Action{Type: ActionOpenFile, DocumentID: "doc_1"})
	none(Action{Type: ActionDelete, DocumentID: "doc_1"})
	none(Action{Type: ActionRestore, DocumentID: "doc_1"})
	none(Action{Type: ActionEmptyBin})

	_, _, err := leaf.Apply(Action{Type: ActionOpen, Name: explorer.DocumentsItem})
	require.NoError(t, err)
	none(Action{Type: ActionRestore, DocumentID: "doc_1"})
	none(Action{Type: ActionEmptyBin})

	_, _, err = leaf.Apply(Action{Type: ActionBack})
	require.NoError(t, err)
	_, _, err = leaf.Apply(Action{Type: ActionOpen, Name: explorer.RecycleBinItem})
	require.NoError(t, err)
	none(Action{Type: ActionOpenFile, DocumentID: "doc_1"})
	none(Action{Type: ActionDelete, DocumentID: "doc_1"})

	_, eff, err := leaf.Apply(Action{Type: ActionRestore, DocumentID: "doc_1"})
	require.NoError(t, err)
	assert.Equal(t, Effect{Type: EffectRestore, DocumentID: "doc_1"}, eff)
	_, eff, err = leaf.Apply(Action{Type: ActionEmptyBin})
	require.NoError(t, err)
	assert.Equal(t, EffectEmptyBin, eff.Type)
}

func TestRecycleBinLeaf(t *testing.T) {
	h := newTestHost()
	leaf := h.New(entry(catalog.RecycleBin), nil)

	body := leaf.Render(Files{Recycled: []vfs.Document{{ID: "doc_2", Name: "b.txt"}}})
	assert.Equal(t, 1, body.View.(recyclebin.View).Count)

	_, eff, err := leaf.Apply(Action{Type: ActionRestore, DocumentID: "doc_2"})
	require.NoError(t, err)
	assert.Equal(t, Effect{Type: EffectRestore, DocumentID: "doc_2"}, eff)

	_, eff, err = leaf.Apply(Action{Type: ActionEmptyBin})
	require.NoError(t, err)
	assert.Equal(t, EffectEmptyBin, eff.Type)
}

func TestBrowserLeaf(t *testing.T) {
	h := newTestHost()
	leaf := h.New(entry(catalog.Internet), nil)

	changed, _, err := leaf.Apply(Action{Type: ActionNavigate, URL: "example.com"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "https://example.com", leaf.Render(Files{}).View.(browser.View).URL)

	changed, _, err = leaf.Apply(Action{Type: ActionNavigate, URL: "http://"})
	assert.ErrorIs(t, err, ErrBadAction)
	assert.ErrorIs(t, err, browser.ErrInvalidURL)
	assert.False(t, changed)
}

func TestMinesweeperLeaf(t *testing.T) {
	h := newTestHost()
	leaf := h.New(entry(catalog.Minesweeper), nil)

	changed, _, err := leaf.Apply(Action{Type: ActionFlag, Row: 0, Col: 0})
	require.NoError(t, err)
	assert.True(t, changed)

	view := leaf.Render(Files{}).View.(minesweeper.View)
	assert.Equal(t, minesweeper.StateFlagged, view.Cells[0][0].State)
	assert.Equal(t, 1, view.Flags)

	changed, _, err = leaf.Apply(Action{Type: ActionNewGame})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, leaf.Render(Files{}).View.(minesweeper.View).Flags)
}

func TestRegisterOverridesFactory(t *testing.T) {
	h := newTestHost()
	h.Register(catalog.Multimedia, func(e catalog.Entry, _ *vfs.Document) Leaf {
		return &placeholderLeaf{title: "custom " + e.Title}
	})

	body := h.New(entry(catalog.Multimedia), nil).Render(Files{})
	assert.Equal(t, Placeholder{Message: "Welcome to custom Multimedia!"}, body.View)
}
