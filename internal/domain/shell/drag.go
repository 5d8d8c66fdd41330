package shell

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/window"
)

// Drag is an in-progress window drag. Pointer deltas accumulate locally and
// are invisible to other observers; only Commit publishes a change. A Drag
// is owned by one goroutine.
type Drag struct {
	s       *Shell
	kind    catalog.Kind
	session *window.DragSession
}

// BeginDrag starts dragging an open, free-floating window.
func (s *Shell) BeginDrag(kind catalog.Kind) (*Drag, error) {
	k, err := catalog.Parse(string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.windows.BeginDrag(k)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotDraggable, k)
	}
	return &Drag{s: s, kind: k, session: session}, nil
}

// Kind returns the dragged window.
func (d *Drag) Kind() catalog.Kind { return d.kind }

// By adds a pointer delta.
func (d *Drag) By(dx, dy int) { d.session.Drag(dx, dy) }

// Preview returns where the window would land if committed now.
func (d *Drag) Preview() window.Point { return d.session.Preview() }

// Commit writes the final position and notifies subscribers once. It is a
// no-op when the drag already ended or the window was closed, reopened or
// maximized meanwhile.
func (d *Drag) Commit() Result {
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := d.session.Commit()
	if applied {
		s.changedLocked()
		s.observe(IntentMove, OutcomeApplied)
	} else {
		s.observe(IntentMove, OutcomeNoop)
	}

	s.logger.Debug("drag committed",
		zap.String("kind", string(d.kind)),
		zap.Bool("applied", applied),
		zap.Uint64("version", s.version))
	return Result{Applied: applied}
}

// Cancel abandons the drag. The window keeps its position.
func (d *Drag) Cancel() { d.session.Cancel() }
