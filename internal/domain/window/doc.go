/*
Package window implements the shell's window manager.

It tracks:
  - Open application instances, at most one per catalog kind, in open order
  - The focused kind (or none)
  - Per-window frame geometry: position, maximized flag, drag sessions

Instance records and frames are kept apart on purpose: a frame is created
at the anchor when its instance opens and is dropped on close, so a
reopened window always starts at the default position while the instance
list never holds duplicates.

Example usage:

	m := window.NewManager(window.DefaultConfig())
	m.OpenOrActivate(catalog.Resolve(catalog.Notepad), nil)
	m.ToggleMaximize(catalog.Notepad)
	for _, layer := range m.Stack() {
		// draw layer.Rect at layer.ZIndex
	}
*/
package window
