// Package shell is the root of a desktop session. It owns the document
// store, the window manager, the desktop icons, the start menu flag, the
// taskbar clock and one leaf per open window.
//
// Callers never touch those parts directly. They send an Intent to
// Dispatch, which applies it under a single lock so that transitions are
// observed one at a time, then read a Snapshot or Subscribe to change
// events:
//
//	sh := shell.New(shell.WithLogger(logger))
//	sh.StartClock(ctx)
//	defer sh.StopClock()
//
//	res, err := sh.Dispatch(shell.Intent{Type: shell.IntentOpen, Kind: catalog.Notepad})
//
// Dispatch returns ErrUnknownIntent for an unrecognized type and
// ErrInvalidIntent for unusable arguments. Everything else, such as focusing
// a window that is not open, is a no-op reported as Result.Applied == false.
package shell
