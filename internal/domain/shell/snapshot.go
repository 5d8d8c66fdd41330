package shell

import (
	"time"

	"github.com/GriffinCanCode/RetroShell/internal/apps"
	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
	"github.com/GriffinCanCode/RetroShell/internal/domain/window"
)

// ClockLayout is the taskbar clock format.
const ClockLayout = "15:04"

// FormatClock renders t for the taskbar.
func FormatClock(t time.Time) string { return t.Format(ClockLayout) }

// Snapshot is everything the renderer needs to draw the shell.
type Snapshot struct {
	Version uint64       `json:"version"`
	Icons   []IconView   `json:"icons"`
	Windows []WindowView `json:"windows"`
	Taskbar TaskbarView  `json:"taskbar"`
}

// IconView is one desktop icon.
type IconView struct {
	Kind  catalog.Kind `json:"kind"`
	Label string       `json:"label"`
	Icon  catalog.Icon `json:"icon"`
	X     int          `json:"x"`
	Y     int          `json:"y"`
}

// WindowView is one visible window, in back-to-front order.
type WindowView struct {
	Kind      catalog.Kind `json:"kind"`
	Title     string       `json:"title"`
	Icon      catalog.Icon `json:"icon"`
	Rect      window.Rect  `json:"rect"`
	ZIndex    int          `json:"z_index"`
	Opacity   float64      `json:"opacity"`
	Focused   bool         `json:"focused"`
	Maximized bool         `json:"maximized"`
	Body      apps.Body    `json:"body"`
}

// TaskbarView is the bottom bar.
type TaskbarView struct {
	Buttons   []TaskbarButton `json:"buttons"`
	StartMenu StartMenuView   `json:"start_menu"`
	Clock     string          `json:"clock"`
}

// TaskbarButton is one open instance, minimized or not, in open order.
type TaskbarButton struct {
	Kind      catalog.Kind `json:"kind"`
	Title     string       `json:"title"`
	Icon      catalog.Icon `json:"icon"`
	Pressed   bool         `json:"pressed"`
	Minimized bool         `json:"minimized"`
}

// StartMenuView is the start menu popup.
type StartMenuView struct {
	Open    bool            `json:"open"`
	Entries []catalog.Entry `json:"entries"`
}

func (s *Shell) snapshotLocked() *Snapshot {
	files := apps.Files{
		Live:     s.store.List(vfs.Documents),
		Recycled: s.store.Recycled(),
	}
	snap := &Snapshot{
		Version: s.version,
		Icons:   []IconView{},
		Windows: []WindowView{},
		Taskbar: TaskbarView{
			Buttons:   []TaskbarButton{},
			StartMenu: StartMenuView{Open: s.startMenuOpen, Entries: catalog.StartMenu()},
			Clock:     FormatClock(s.now()),
		},
	}

	for _, p := range s.desktop.Placements() {
		snap.Icons = append(snap.Icons, IconView{
			Kind:  p.Kind,
			Label: p.Label,
			Icon:  catalog.Resolve(p.Kind).Icon,
			X:     p.X,
			Y:     p.Y,
		})
	}

	for _, layer := range s.windows.Stack() {
		wv := WindowView{
			Kind:      layer.Instance.Kind,
			Title:     layer.Instance.Title,
			Icon:      layer.Instance.Icon,
			Rect:      layer.Rect,
			ZIndex:    layer.ZIndex,
			Opacity:   layer.Opacity,
			Focused:   layer.Focused,
			Maximized: layer.Frame.Maximized,
		}
		if leaf, ok := s.leaves[layer.Instance.Kind]; ok {
			wv.Body = leaf.Render(files)
		}
		snap.Windows = append(snap.Windows, wv)
	}

	focused, hasFocus := s.windows.Focused()
	for _, inst := range s.windows.List() {
		snap.Taskbar.Buttons = append(snap.Taskbar.Buttons, TaskbarButton{
			Kind:      inst.Kind,
			Title:     inst.Title,
			Icon:      inst.Icon,
			Pressed:   hasFocus && focused == inst.Kind && !inst.Minimized,
			Minimized: inst.Minimized,
		})
	}
	return snap
}
