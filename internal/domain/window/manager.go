package window

import (
	"slices"
	"time"

	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
)

// FocusedZIndex is the stacking index forced onto the focused window.
const FocusedZIndex = 9999

const (
	focusedOpacity   = 1.0
	unfocusedOpacity = 0.9
)

// Instance is one open application. There is at most one per kind.
type Instance struct {
	Kind      catalog.Kind  `json:"kind"`
	Title     string        `json:"title"`
	Icon      catalog.Icon  `json:"icon"`
	Minimized bool          `json:"minimized"`
	File      *vfs.Document `json:"file,omitempty"`
	OpenedAt  time.Time     `json:"opened_at"`
}

// Layer is a visible window in render order.
type Layer struct {
	Instance Instance `json:"instance"`
	Rect     Rect     `json:"rect"`
	Frame    Frame    `json:"frame"`
	ZIndex   int      `json:"z_index"`
	Opacity  float64  `json:"opacity"`
	Focused  bool     `json:"focused"`
}

// TaskbarAction is what a taskbar button press did.
type TaskbarAction string

const (
	TaskbarRestored  TaskbarAction = "restored"
	TaskbarMinimized TaskbarAction = "minimized"
	TaskbarFocused   TaskbarAction = "focused"
)

// Stats contains window manager statistics
type Stats struct {
	Total     int           `json:"total"`
	Visible   int           `json:"visible"`
	Minimized int           `json:"minimized"`
	Focused   *catalog.Kind `json:"focused,omitempty"`
}

// Config holds window geometry settings.
type Config struct {
	Viewport Size  // full maximized area
	Canvas   Size  // soft drag bound
	Anchor   Point // position of a freshly opened window
	FreeSize Size  // size of a non-maximized window
}

// DefaultConfig returns the classic 400x300 windows on a 2000x1200 canvas.
func DefaultConfig() Config {
	return Config{
		Viewport: Size{Width: 1280, Height: 720},
		Canvas:   Size{Width: 2000, Height: 1200},
		Anchor:   Point{X: 100, Y: 100},
		FreeSize: Size{Width: 400, Height: 300},
	}
}

// Manager tracks open instances in open order, the focused kind, and one
// frame per open window.
//
// Manager is not safe for concurrent use; the shell serializes access.
type Manager struct {
	instances []*Instance
	frames    map[catalog.Kind]*Frame
	focused   catalog.Kind
	cfg       Config
	bounds    Bounds
	now       func() time.Time
}

// NewManager creates a window manager.
func NewManager(cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		cfg.Viewport = def.Viewport
	}
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		cfg.Canvas = def.Canvas
	}
	if cfg.FreeSize.Width <= 0 || cfg.FreeSize.Height <= 0 {
		cfg.FreeSize = def.FreeSize
	}
	return &Manager{
		frames: make(map[catalog.Kind]*Frame),
		cfg:    cfg,
		bounds: Bounds{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height},
		now:    time.Now,
	}
}

// OpenOrActivate opens entry, or focuses and un-minimizes its existing
// instance. file is attached only when a new instance is created. The
// second result reports whether an instance was created.
func (m *Manager) OpenOrActivate(entry catalog.Entry, file *vfs.Document) (Instance, bool) {
	if inst := m.find(entry.Kind); inst != nil {
		m.focused = entry.Kind
		inst.Minimized = false
		return *inst, false
	}

	var attached *vfs.Document
	if file != nil {
		doc := *file
		attached = &doc
	}

	inst := &Instance{
		Kind:     entry.Kind,
		Title:    entry.Title,
		Icon:     entry.Icon,
		File:     attached,
		OpenedAt: m.now(),
	}
	m.instances = append(m.instances, inst)
	m.frames[entry.Kind] = &Frame{Position: m.cfg.Anchor}
	m.focused = entry.Kind
	return *inst, true
}

// Close removes the instance and its frame. Focus is cleared only when the
// closed window held it; no other window is focused in its place.
func (m *Manager) Close(kind catalog.Kind) bool {
	i := m.index(kind)
	if i < 0 {
		return false
	}
	m.instances = slices.Delete(m.instances, i, i+1)
	delete(m.frames, kind)
	if m.focused == kind {
		m.focused = ""
	}
	return true
}

// Focus makes kind the frontmost window.
func (m *Manager) Focus(kind catalog.Kind) bool {
	if m.find(kind) == nil {
		return false
	}
	m.focused = kind
	return true
}

// Focused returns the focused kind, if any.
func (m *Manager) Focused() (catalog.Kind, bool) {
	return m.focused, m.focused != ""
}

// ToggleMinimize flips the minimized flag without changing focus.
func (m *Manager) ToggleMinimize(kind catalog.Kind) bool {
	inst := m.find(kind)
	if inst == nil {
		return false
	}
	inst.Minimized = !inst.Minimized
	return true
}

// ActivateFromTaskbar applies a taskbar button press: a minimized window is
// restored and focused, the focused window is minimized, any other window
// is focused.
func (m *Manager) ActivateFromTaskbar(kind catalog.Kind) (TaskbarAction, bool) {
	inst := m.find(kind)
	if inst == nil {
		return "", false
	}
	switch {
	case inst.Minimized:
		inst.Minimized = false
		m.focused = kind
		return TaskbarRestored, true
	case m.focused == kind:
		inst.Minimized = true
		return TaskbarMinimized, true
	default:
		m.focused = kind
		return TaskbarFocused, true
	}
}

// Get returns a copy of the instance for kind.
func (m *Manager) Get(kind catalog.Kind) (Instance, bool) {
	if inst := m.find(kind); inst != nil {
		return *inst, true
	}
	return Instance{}, false
}

// List returns copies of all instances in open order, minimized included.
func (m *Manager) List() []Instance {
	out := make([]Instance, len(m.instances))
	for i, inst := range m.instances {
		out[i] = *inst
	}
	return out
}

// Stack returns the visible windows back to front. The focused window gets
// FocusedZIndex; the others stack by their open-order position.
func (m *Manager) Stack() []Layer {
	layers := make([]Layer, 0, len(m.instances))
	for i, inst := range m.instances {
		if inst.Minimized {
			continue
		}
		focused := inst.Kind == m.focused
		layer := Layer{
			Instance: *inst,
			Frame:    *m.frames[inst.Kind],
			Rect:     m.rect(m.frames[inst.Kind]),
			ZIndex:   i,
			Opacity:  unfocusedOpacity,
			Focused:  focused,
		}
		if focused {
			layer.ZIndex = FocusedZIndex
			layer.Opacity = focusedOpacity
		}
		layers = append(layers, layer)
	}
	slices.SortStableFunc(layers, func(a, b Layer) int { return a.ZIndex - b.ZIndex })
	return layers
}

// Move commits a final window position, clamped to the canvas. Maximized
// windows do not move.
func (m *Manager) Move(kind catalog.Kind, x, y int) bool {
	f := m.frames[kind]
	if f == nil || f.Maximized {
		return false
	}
	f.Position = m.bounds.Clamp(Point{X: x, Y: y})
	return true
}

// BeginDrag starts a drag session for a free-floating window.
func (m *Manager) BeginDrag(kind catalog.Kind) (*DragSession, bool) {
	f := m.frames[kind]
	if f == nil || f.Maximized {
		return nil, false
	}
	return &DragSession{m: m, frame: f, start: f.Position}, true
}

// ToggleMaximize flips between the full viewport and the last free
// position.
func (m *Manager) ToggleMaximize(kind catalog.Kind) bool {
	f := m.frames[kind]
	if f == nil {
		return false
	}
	f.Maximized = !f.Maximized
	return true
}

// Frame returns the frame of an open window.
func (m *Manager) Frame(kind catalog.Kind) (Frame, bool) {
	if f := m.frames[kind]; f != nil {
		return *f, true
	}
	return Frame{}, false
}

// Geometry returns the effective on-screen rectangle of an open window.
func (m *Manager) Geometry(kind catalog.Kind) (Rect, bool) {
	f := m.frames[kind]
	if f == nil {
		return Rect{}, false
	}
	return m.rect(f), true
}

// Stats returns manager statistics
func (m *Manager) Stats() Stats {
	var s Stats
	for _, inst := range m.instances {
		s.Total++
		if inst.Minimized {
			s.Minimized++
		} else {
			s.Visible++
		}
	}
	if m.focused != "" {
		k := m.focused
		s.Focused = &k
	}
	return s
}

// rect resolves a frame into screen space. The maximized rectangle keeps
// the bottom tenth of the viewport for the taskbar.
func (m *Manager) rect(f *Frame) Rect {
	if f.Maximized {
		return Rect{Width: m.cfg.Viewport.Width, Height: m.cfg.Viewport.Height * 9 / 10}
	}
	return Rect{
		X:      f.Position.X,
		Y:      f.Position.Y,
		Width:  m.cfg.FreeSize.Width,
		Height: m.cfg.FreeSize.Height,
	}
}

func (m *Manager) owns(f *Frame) bool {
	for _, cur := range m.frames {
		if cur == f {
			return true
		}
	}
	return false
}

func (m *Manager) find(kind catalog.Kind) *Instance {
	if i := m.index(kind); i >= 0 {
		return m.instances[i]
	}
	return nil
}

func (m *Manager) index(kind catalog.Kind) int {
	return slices.IndexFunc(m.instances, func(inst *Instance) bool { return inst.Kind == kind })
}
