package shell

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/RetroShell/internal/apps"
	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/desktop"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
	"github.com/GriffinCanCode/RetroShell/internal/domain/window"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RetroShell/internal/shared/id"
)

// Outcome classifies a dispatch for observers.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeNoop    Outcome = "noop"
	OutcomeError   Outcome = "error"
)

// DefaultMaxAdHocWindows bounds how many windows of kinds outside the
// catalog and the desktop may be open at once.
const DefaultMaxAdHocWindows = 4

// Stats summarizes shell state.
type Stats struct {
	Windows       window.Stats `json:"windows"`
	Documents     vfs.Stats    `json:"documents"`
	Subscribers   int          `json:"subscribers"`
	StartMenuOpen bool         `json:"start_menu_open"`
	Version       uint64       `json:"version"`
}

// Shell owns the whole desktop session. Every mutation goes through
// Dispatch and is applied under one lock, one intent at a time.
type Shell struct {
	mu            sync.Mutex
	store         *vfs.Store
	windows       *window.Manager
	desktop       *desktop.Desktop
	host          *apps.Host
	leaves        map[catalog.Kind]apps.Leaf
	startMenuOpen bool
	version       uint64
	lastClock     string
	maxAdHoc      int

	subs    map[int]chan Event
	nextSub int

	clock   *Clock
	now     func() time.Time
	logger  *logging.Logger
	observe func(IntentType, Outcome)
}

// Option configures a Shell.
type Option func(*options)

type options struct {
	store         *vfs.Store
	windowConfig  window.Config
	layout        *desktop.Layout
	host          *apps.Host
	now           func() time.Time
	logger        *logging.Logger
	clockInterval time.Duration
	maxAdHoc      int
	observe       func(IntentType, Outcome)
}

// WithStore replaces the document store.
func WithStore(s *vfs.Store) Option { return func(o *options) { o.store = s } }

// WithWindowConfig sets window geometry.
func WithWindowConfig(cfg window.Config) Option {
	return func(o *options) { o.windowConfig = cfg }
}

// WithLayout sets the initial desktop icons.
func WithLayout(l desktop.Layout) Option { return func(o *options) { o.layout = &l } }

// WithHost replaces the leaf host.
func WithHost(h *apps.Host) Option { return func(o *options) { o.host = h } }

// WithNow sets the wall clock used for the taskbar.
func WithNow(fn func() time.Time) Option { return func(o *options) { o.now = fn } }

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option { return func(o *options) { o.logger = l } }

// WithClockInterval sets how often the taskbar clock is sampled.
func WithClockInterval(d time.Duration) Option {
	return func(o *options) { o.clockInterval = d }
}

// WithMaxAdHocWindows caps open windows of ad-hoc kinds. Non-positive
// values keep the default.
func WithMaxAdHocWindows(n int) Option { return func(o *options) { o.maxAdHoc = n } }

// WithIntentObserver registers a callback run after every dispatch.
func WithIntentObserver(fn func(IntentType, Outcome)) Option {
	return func(o *options) { o.observe = fn }
}

// New creates a shell with the default layout and an empty store.
func New(opts ...Option) *Shell {
	o := options{windowConfig: window.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = vfs.NewStore()
	}
	if o.layout == nil {
		l := desktop.DefaultLayout()
		o.layout = &l
	}
	if o.host == nil {
		o.host = apps.NewHost()
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.maxAdHoc <= 0 {
		o.maxAdHoc = DefaultMaxAdHocWindows
	}
	if o.observe == nil {
		o.observe = func(IntentType, Outcome) {}
	}

	s := &Shell{
		store:    o.store,
		windows:  window.NewManager(o.windowConfig),
		desktop:  desktop.New(*o.layout),
		host:     o.host,
		leaves:   make(map[catalog.Kind]apps.Leaf),
		subs:     make(map[int]chan Event),
		now:      o.now,
		logger:   o.logger,
		observe:  o.observe,
		maxAdHoc: o.maxAdHoc,
	}
	s.lastClock = FormatClock(s.now())
	s.clock = NewClock(o.clockInterval, s.tick)
	return s
}

// Dispatch applies one intent. A nil error with Applied false is a no-op.
// Subscribers are notified only when something changed.
func (s *Shell) Dispatch(in Intent) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.apply(in)
	switch {
	case err != nil:
		s.logger.Debug("intent rejected",
			zap.String("type", string(in.Type)),
			zap.String("kind", string(in.Kind)),
			zap.Error(err))
		s.observe(in.Type, OutcomeError)
		return Result{}, err
	case res.Applied:
		s.changedLocked()
		s.observe(in.Type, OutcomeApplied)
	default:
		s.observe(in.Type, OutcomeNoop)
	}

	s.logger.Debug("intent dispatched",
		zap.String("type", string(in.Type)),
		zap.String("kind", string(in.Kind)),
		zap.Bool("applied", res.Applied),
		zap.Uint64("version", s.version))
	return res, nil
}

// changedLocked bumps the version and publishes a snapshot.
func (s *Shell) changedLocked() {
	s.version++
	s.publishLocked(Event{Type: EventSnapshot, Snapshot: s.snapshotLocked()})
}

func (s *Shell) apply(in Intent) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}
	if in.needsKind() {
		kind, err := catalog.Parse(string(in.Kind))
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
		}
		in.Kind = kind
	}

	switch in.Type {
	case IntentOpen:
		return s.open(in)
	case IntentClose:
		if !s.windows.Close(in.Kind) {
			return Result{}, nil
		}
		delete(s.leaves, in.Kind)
		return Result{Applied: true}, nil
	case IntentFocus:
		return Result{Applied: s.windows.Focus(in.Kind)}, nil
	case IntentMinimize:
		return Result{Applied: s.windows.ToggleMinimize(in.Kind)}, nil
	case IntentMaximize:
		return Result{Applied: s.windows.ToggleMaximize(in.Kind)}, nil
	case IntentMove:
		return Result{Applied: s.windows.Move(in.Kind, in.X, in.Y)}, nil
	case IntentTaskbar:
		action, ok := s.windows.ActivateFromTaskbar(in.Kind)
		return Result{Applied: ok, Taskbar: action}, nil
	case IntentToggleStartMenu:
		s.startMenuOpen = !s.startMenuOpen
		return Result{Applied: true}, nil
	case IntentCloseStartMenu:
		if !s.startMenuOpen {
			return Result{}, nil
		}
		s.startMenuOpen = false
		return Result{Applied: true}, nil
	case IntentMoveIcon:
		return Result{Applied: s.desktop.Move(in.Kind, in.X, in.Y)}, nil
	case IntentSave:
		return s.save(in.Name, in.Content), nil
	case IntentDelete:
		return s.recycle(in.DocumentID), nil
	case IntentRestore:
		return s.restore(in.DocumentID), nil
	case IntentEmptyBin:
		n := s.store.EmptyRecycleBin()
		return Result{Applied: n > 0, Purged: n}, nil
	case IntentLeaf:
		return s.leaf(in)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownIntent, in.Type)
	}
}

func (s *Shell) open(in Intent) (Result, error) {
	if s.adHoc(in.Kind) {
		if _, open := s.windows.Get(in.Kind); !open && s.openAdHoc() >= s.maxAdHoc {
			return Result{}, fmt.Errorf("%w: %d already open", ErrTooManyWindows, s.maxAdHoc)
		}
	}

	entry := catalog.Resolve(in.Kind)
	if in.Source == SourceDesktop {
		if e, ok := s.desktop.Activate(in.Kind); ok {
			entry = e
		}
	}
	s.startMenuOpen = false
	s.openEntry(entry, nil)
	return Result{Applied: true}, nil
}

// adHoc reports whether k is neither catalogued nor placed on the desktop.
func (s *Shell) adHoc(k catalog.Kind) bool {
	if k.Known() {
		return false
	}
	_, onDesktop := s.desktop.Activate(k)
	return !onDesktop
}

func (s *Shell) openAdHoc() int {
	n := 0
	for _, inst := range s.windows.List() {
		if s.adHoc(inst.Kind) {
			n++
		}
	}
	return n
}

func (s *Shell) openEntry(entry catalog.Entry, file *vfs.Document) {
	if _, created := s.windows.OpenOrActivate(entry, file); created {
		s.leaves[entry.Kind] = s.host.New(entry, file)
	}
}

func (s *Shell) save(name, content string) Result {
	doc, res := s.store.Save(name, content)
	if res == vfs.SaveRejected {
		return Result{}
	}
	return Result{Applied: true, Document: &doc}
}

// recycle moves a document to the bin and reports it as it now lies there.
func (s *Shell) recycle(docID id.DocumentID) Result {
	if !s.store.Delete(docID) {
		return Result{}
	}
	doc, _ := s.store.GetRecycled(docID)
	return Result{Applied: true, Document: &doc}
}

func (s *Shell) restore(docID id.DocumentID) Result {
	if !s.store.Restore(docID) {
		return Result{}
	}
	doc, _ := s.store.Get(docID)
	return Result{Applied: true, Document: &doc}
}

func (s *Shell) leaf(in Intent) (Result, error) {
	if in.Action == nil {
		return Result{}, fmt.Errorf("%w: missing leaf action", ErrInvalidIntent)
	}
	leaf, ok := s.leaves[in.Kind]
	if !ok {
		return Result{}, nil
	}

	changed, eff, err := leaf.Apply(*in.Action)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}

	res := Result{Applied: changed}
	switch eff.Type {
	case apps.EffectSave:
		saved := s.save(eff.Name, eff.Content)
		res.Document = saved.Document
		res.Applied = res.Applied || saved.Applied
	case apps.EffectOpenFile:
		doc, ok := s.store.Get(eff.DocumentID)
		if ok {
			s.openEntry(catalog.Resolve(catalog.Notepad), &doc)
			res.Applied = true
			res.Document = &doc
		}
	case apps.EffectDelete:
		if r := s.recycle(eff.DocumentID); r.Applied {
			res.Applied, res.Document = true, r.Document
		}
	case apps.EffectRestore:
		if r := s.restore(eff.DocumentID); r.Applied {
			res.Applied, res.Document = true, r.Document
		}
	case apps.EffectEmptyBin:
		res.Purged = s.store.EmptyRecycleBin()
		res.Applied = res.Purged > 0 || res.Applied
	}
	return res, nil
}

// Snapshot renders the current state.
func (s *Shell) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Documents lists live documents whose names match pattern. An empty
// pattern matches all.
func (s *Shell) Documents(pattern string) ([]vfs.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Find(vfs.Documents, pattern)
}

// Recycled lists the recycle bin in bin order.
func (s *Shell) Recycled() []vfs.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Recycled()
}

// Export archives the live Documents folder. The archive is built in memory
// so the lock is not held while the caller streams it.
func (s *Shell) Export(c vfs.Compression) ([]byte, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	n, err := s.store.Export(&buf, vfs.Documents, c)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to export documents: %w", err)
	}
	return buf.Bytes(), n, nil
}

// Stats summarizes the session.
func (s *Shell) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Windows:       s.windows.Stats(),
		Documents:     s.store.Stats(),
		Subscribers:   len(s.subs),
		StartMenuOpen: s.startMenuOpen,
		Version:       s.version,
	}
}

// StartClock starts the taskbar clock. Calling it again while running is a
// no-op.
func (s *Shell) StartClock(ctx context.Context) bool {
	return s.clock.Start(ctx)
}

// StopClock stops the taskbar clock.
func (s *Shell) StopClock() bool {
	return s.clock.Stop()
}

// tick publishes a clock event when the displayed minute changes.
func (s *Shell) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := FormatClock(s.now())
	if text == s.lastClock {
		return
	}
	s.lastClock = text
	s.publishLocked(Event{Type: EventClock, Clock: text})
}
