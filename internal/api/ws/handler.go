package ws

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/webdesk/internal/shared/id"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config tunes the pointer stream.
type Config struct {
	// ReadLimit caps the size of one client frame.
	ReadLimit int64
	// GeometryRPS and GeometryBurst rate limit geometry frames per
	// connection. Frames over the limit are coalesced: the newest one is
	// sent as soon as the limiter allows. The final geometry of a session
	// is always sent.
	GeometryRPS   float64
	GeometryBurst int
	PingInterval  time.Duration
	WriteTimeout  time.Duration
}

// DefaultConfig returns the stock stream settings.
func DefaultConfig() Config {
	return Config{
		ReadLimit:     4096,
		GeometryRPS:   60,
		GeometryBurst: 10,
		PingInterval:  30 * time.Second,
		WriteTimeout:  10 * time.Second,
	}
}

// Message is a client frame.
type Message struct {
	Type   string               `json:"type"`
	App    window.ApplicationID `json:"app,omitempty"`
	X      int                  `json:"x,omitempty"`
	Y      int                  `json:"y,omitempty"`
	Width  int                  `json:"width,omitempty"`
	Height int                  `json:"height,omitempty"`
}

// Reply is a server frame.
type Reply struct {
	Type   string         `json:"type"`
	View   *window.View   `json:"view,omitempty"`
	Window *window.Window `json:"window,omitempty"`
	// Ended marks the geometry frame of a pointer-up: the interaction is
	// over.
	Ended bool   `json:"ended,omitempty"`
	Error string `json:"error,omitempty"`
}

// Server frame types.
const (
	TypeSnapshot = "snapshot"
	TypeGeometry = "geometry"
	TypePong     = "pong"
	TypeError    = "error"
	TypePing     = "ping"
)

// Handler manages WebSocket connections
type Handler struct {
	sessions *session.Manager
	cfg      Config
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, cfg Config, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = def.ReadLimit
	}
	if cfg.GeometryRPS <= 0 {
		cfg.GeometryRPS = def.GeometryRPS
	}
	if cfg.GeometryBurst <= 0 {
		cfg.GeometryBurst = def.GeometryBurst
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	return &Handler{
		sessions: sessions,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		upgrader: websocket.Upgrader{
			// Shells are served from any origin, like the JSON API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// conn is one shell connection. Writes are serialized by mu.
type conn struct {
	ws      *websocket.Conn
	mu      sync.Mutex
	limiter *rate.Limiter
	timeout time.Duration
	metrics *monitoring.Metrics

	// pending is the newest geometry held back by the limiter. The flush
	// timer of generation gen sends it.
	pending *window.Window
	flush   *time.Timer
	gen     uint64
	closed  bool
}

func (c *conn) send(r Reply) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(r)
}

// write sends one frame. c.mu must be held.
func (c *conn) write(r Reply) error {
	if c.closed {
		return websocket.ErrCloseSent
	}
	data, err := sonic.Marshal(r)
	if err != nil {
		return err
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	c.metrics.RecordWSMessage("out", r.Type)
	return nil
}

// snapshot sends a full view. Any held geometry is older than the view and
// is discarded.
func (c *conn) snapshot(v window.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discardPending()
	return c.write(Reply{Type: TypeSnapshot, View: &v})
}

// geometry sends a moved window through the limiter. A frame over the limit
// is held and flushed once a token is available; a newer frame replaces it.
// A final frame skips the limiter and supersedes any held frame.
func (c *conn) geometry(w *window.Window, final bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if final {
		c.discardPending()
		c.metrics.RecordGeometryFrame("sent")
		return c.write(Reply{Type: TypeGeometry, Window: w, Ended: true})
	}
	if c.pending != nil {
		c.pending = w
		c.metrics.RecordGeometryFrame("dropped")
		return nil
	}
	if c.limiter.Allow() {
		c.metrics.RecordGeometryFrame("sent")
		return c.write(Reply{Type: TypeGeometry, Window: w})
	}

	c.pending = w
	c.gen++
	gen := c.gen
	c.flush = time.AfterFunc(c.limiter.Reserve().Delay(), func() { c.flushPending(gen) })
	return nil
}

func (c *conn) flushPending(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.pending == nil {
		return
	}
	w := c.pending
	c.pending, c.flush = nil, nil
	c.metrics.RecordGeometryFrame("sent")
	_ = c.write(Reply{Type: TypeGeometry, Window: w})
}

// discardPending drops the held frame, if any. c.mu must be held.
func (c *conn) discardPending() {
	if c.flush != nil {
		c.flush.Stop()
		c.flush = nil
	}
	c.gen++
	if c.pending != nil {
		c.pending = nil
		c.metrics.RecordGeometryFrame("dropped")
	}
}

func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discardPending()
	c.closed = true
}

func (c *conn) sendError(msg string) error {
	return c.send(Reply{Type: TypeError, Error: msg})
}

// HandleConnection upgrades the request and streams one desktop.
func (h *Handler) HandleConnection(c *gin.Context) {
	deskID, err := id.ParseDesktopID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.sessions.View(deskID)
	if err != nil {
		if errors.Is(err, session.ErrDesktopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	connID := id.NewConnectionID()
	log := h.logger.With(
		logging.Desktop(deskID),
		logging.Connection(connID),
		logging.Trace(tracing.TraceIDFrom(c.Request.Context())))

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()
	log.Debug("Stream connected")

	cl := &conn{
		ws:      ws,
		limiter: rate.NewLimiter(rate.Limit(h.cfg.GeometryRPS), h.cfg.GeometryBurst),
		timeout: h.cfg.WriteTimeout,
		metrics: h.metrics,
	}
	defer cl.close()

	deadline := 2 * h.cfg.PingInterval
	ws.SetReadLimit(h.cfg.ReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(deadline))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(deadline))
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(ws, done)

	if err := cl.snapshot(view); err != nil {
		return
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("Stream read failed", zap.Error(err))
			}
			break
		}
		_ = ws.SetReadDeadline(time.Now().Add(deadline))

		var msg Message
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.metrics.RecordWSMessage("in", "invalid")
			if cl.sendError("invalid message") != nil {
				break
			}
			continue
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		if !h.handle(cl, deskID, msg, log) {
			break
		}
	}
	log.Debug("Stream closed")
}

// handle processes one frame. It returns false when the connection should
// close.
func (h *Handler) handle(cl *conn, deskID id.DesktopID, msg Message, log *zap.Logger) bool {
	if msg.Type == TypePing {
		return cl.send(Reply{Type: TypePong}) == nil
	}

	ev, err := toEvent(msg)
	if err != nil {
		return cl.sendError(err.Error()) == nil
	}

	change, moved, view, err := h.sessions.Apply(deskID, ev)
	if err != nil {
		if errors.Is(err, session.ErrDesktopNotFound) {
			_ = cl.sendError(err.Error())
			return false
		}
		log.Error("Event failed", zap.String("type", msg.Type), zap.Error(err))
		return cl.sendError("internal error") == nil
	}

	switch change {
	case window.ChangeStack:
		return cl.snapshot(view) == nil
	case window.ChangeGeometry:
		return cl.geometry(moved, ev.Type == window.EventPointerUp) == nil
	}
	return true
}

func toEvent(msg Message) (window.Event, error) {
	ev := window.Event{
		Type:    window.EventType(msg.Type),
		App:     msg.App,
		Pointer: window.Point{X: msg.X, Y: msg.Y},
	}

	switch ev.Type {
	case window.EventOpen, window.EventClose, window.EventFocus, window.EventWindowDown:
		if err := utils.ValidateApplicationID(string(msg.App)); err != nil {
			return ev, err
		}
	case window.EventTitleDown, window.EventResizeDown:
		if err := utils.ValidateApplicationID(string(msg.App)); err != nil {
			return ev, err
		}
		if err := utils.ValidatePointer(msg.X, msg.Y); err != nil {
			return ev, err
		}
	case window.EventPointerMove, window.EventPointerUp:
		if err := utils.ValidatePointer(msg.X, msg.Y); err != nil {
			return ev, err
		}
	case window.EventViewport:
		if err := utils.ValidateViewport(msg.Width, msg.Height); err != nil {
			return ev, err
		}
		ev.Viewport = window.Viewport{Width: msg.Width, Height: msg.Height}
	default:
		return ev, errors.New("unknown message type: " + msg.Type)
	}
	return ev, nil
}

func (h *Handler) keepAlive(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.cfg.WriteTimeout)); err != nil {
				return
			}
		}
	}
}
