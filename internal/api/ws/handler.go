package ws

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/shell"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RetroShell/internal/shared/types"
	"github.com/GriffinCanCode/RetroShell/internal/shared/utils"
)

// Config tunes the stream.
type Config struct {
	// AllowOrigins lists accepted Origin headers; "*" accepts any.
	AllowOrigins     []string
	SubscriberBuffer int
	PingInterval     time.Duration
	WriteTimeout     time.Duration
}

// DefaultConfig accepts any origin and pings every 30 seconds.
func DefaultConfig() Config {
	return Config{
		AllowOrigins:     []string{"*"},
		SubscriberBuffer: shell.DefaultSubscriberBuffer,
		PingInterval:     30 * time.Second,
		WriteTimeout:     10 * time.Second,
	}
}

// Handler manages WebSocket connections
type Handler struct {
	shell    *shell.Shell
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	cfg      Config
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(sh *shell.Shell, metrics *monitoring.Metrics, logger *logging.Logger, cfg Config) *Handler {
	def := DefaultConfig()
	if cfg.SubscriberBuffer <= 0 {
		cfg.SubscriberBuffer = def.SubscriberBuffer
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = def.AllowOrigins
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	h := &Handler{shell: sh, metrics: metrics, logger: logger, cfg: cfg}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(h.cfg.AllowOrigins, "*") {
		return true
	}
	return slices.Contains(h.cfg.AllowOrigins, origin)
}

// HandleConnection upgrades the request and serves one renderer until it
// disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		id:      uuid.NewString(),
		conn:    conn,
		out:     make(chan types.ServerMessage, h.cfg.SubscriberBuffer),
		done:    make(chan struct{}),
		drags:   make(map[catalog.Kind]*shell.Drag),
		handler: h,
	}
	events, unsubscribe := h.shell.Subscribe(h.cfg.SubscriberBuffer)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	h.logger.Info("stream connected", zap.String("client_id", cl.id), zap.String("remote", c.ClientIP()))

	cl.queue(types.ServerMessage{Type: types.MsgWelcome, ClientID: cl.id})
	cl.queue(types.ServerMessage{Type: types.MsgSnapshot, Snapshot: h.shell.Snapshot()})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cl.writeLoop(events)
	}()

	cl.readLoop()
	cl.cancelDrags()
	cl.stop()
	wg.Wait()
	unsubscribe()
	_ = conn.Close()

	h.logger.Info("stream disconnected", zap.String("client_id", cl.id))
}

func (h *Handler) record(direction string, t types.MessageType) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, string(t))
	}
}

// client is one connection. Only writeLoop writes to conn; drags is owned
// by readLoop.
type client struct {
	id       string
	conn     *websocket.Conn
	out      chan types.ServerMessage
	done     chan struct{}
	stopOnce sync.Once
	drags    map[catalog.Kind]*shell.Drag
	handler  *Handler
}

func (cl *client) stop() {
	cl.stopOnce.Do(func() { close(cl.done) })
}

// queue hands a reply to the writer. It drops the reply once the client is
// shutting down.
func (cl *client) queue(msg types.ServerMessage) {
	select {
	case cl.out <- msg:
	case <-cl.done:
	}
}

func (cl *client) readLoop() {
	h := cl.handler
	pongWait := h.cfg.PingInterval * 2

	cl.conn.SetReadLimit(utils.MaxStreamMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("stream read error", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}
		_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg types.ClientMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			cl.queue(errorMessage("", "malformed message"))
			continue
		}
		h.record("in", msg.Type)

		switch msg.Type {
		case types.MsgPing:
			cl.queue(types.ServerMessage{Type: types.MsgPong, ID: msg.ID})
		case types.MsgIntent:
			cl.queue(cl.dispatch(msg))
		case types.MsgDragStart, types.MsgDragMove, types.MsgDragEnd, types.MsgDragCancel:
			cl.queue(cl.drag(msg))
		default:
			cl.queue(errorMessage(msg.ID, "unknown message type"))
		}
	}
}

func (cl *client) dispatch(msg types.ClientMessage) types.ServerMessage {
	if len(msg.Intent) == 0 {
		return errorMessage(msg.ID, "missing intent")
	}
	var in shell.Intent
	if err := sonic.Unmarshal(msg.Intent, &in); err != nil {
		return errorMessage(msg.ID, "malformed intent")
	}
	res, err := cl.handler.shell.Dispatch(in)
	if err != nil {
		return errorMessage(msg.ID, err.Error())
	}
	return types.ServerMessage{Type: types.MsgResult, ID: msg.ID, Result: res}
}

// drag runs one step of a window drag. Moves only touch the client's own
// session; the shell sees the drag once, on drag_end.
func (cl *client) drag(msg types.ClientMessage) types.ServerMessage {
	kind, err := catalog.Parse(msg.Kind)
	if err != nil {
		return errorMessage(msg.ID, "invalid window kind")
	}

	if msg.Type == types.MsgDragStart {
		if d, ok := cl.drags[kind]; ok {
			d.Cancel()
		}
		d, err := cl.handler.shell.BeginDrag(kind)
		if err != nil {
			delete(cl.drags, kind)
			return errorMessage(msg.ID, err.Error())
		}
		cl.drags[kind] = d
		return types.ServerMessage{Type: types.MsgDrag, ID: msg.ID, Preview: d.Preview()}
	}

	d, ok := cl.drags[kind]
	if !ok {
		return errorMessage(msg.ID, "no drag in progress")
	}
	switch msg.Type {
	case types.MsgDragMove:
		d.By(msg.DX, msg.DY)
		return types.ServerMessage{Type: types.MsgDrag, ID: msg.ID, Preview: d.Preview()}
	case types.MsgDragEnd:
		delete(cl.drags, kind)
		return types.ServerMessage{Type: types.MsgResult, ID: msg.ID, Result: d.Commit()}
	default:
		delete(cl.drags, kind)
		d.Cancel()
		return types.ServerMessage{Type: types.MsgResult, ID: msg.ID, Result: shell.Result{}}
	}
}

// cancelDrags abandons drags left open by a vanished client.
func (cl *client) cancelDrags() {
	for kind, d := range cl.drags {
		d.Cancel()
		delete(cl.drags, kind)
	}
}

func (cl *client) writeLoop(events <-chan shell.Event) {
	h := cl.handler
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		var msg types.ServerMessage
		select {
		case <-cl.done:
			return
		case msg = <-cl.out:
		case ev, ok := <-events:
			if !ok {
				return
			}
			msg = eventMessage(ev)
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cl.fail(err)
				return
			}
			continue
		}

		if err := cl.write(msg); err != nil {
			cl.fail(err)
			return
		}
	}
}

func (cl *client) write(msg types.ServerMessage) error {
	msg.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	_ = cl.conn.SetWriteDeadline(time.Now().Add(cl.handler.cfg.WriteTimeout))
	if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	cl.handler.record("out", msg.Type)
	return nil
}

// fail closes the socket so readLoop returns.
func (cl *client) fail(err error) {
	h := cl.handler
	h.logger.Debug("stream write failed", zap.String("client_id", cl.id), zap.Error(err))
	if h.metrics != nil {
		h.metrics.WSDropped.Inc()
	}
	cl.stop()
	_ = cl.conn.Close()
}

func eventMessage(ev shell.Event) types.ServerMessage {
	if ev.Type == shell.EventClock {
		return types.ServerMessage{Type: types.MsgClock, Time: ev.Clock}
	}
	return types.ServerMessage{Type: types.MsgSnapshot, Snapshot: ev.Snapshot}
}

func errorMessage(id, message string) types.ServerMessage {
	return types.ServerMessage{Type: types.MsgError, ID: id, Message: message}
}
