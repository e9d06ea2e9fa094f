package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/shared/id"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the status endpoints.
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	sessions *session.Manager
	catalog  *content.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	started  time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(sessions *session.Manager, catalog *content.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		sessions: sessions,
		catalog:  catalog,
		metrics:  metrics,
		logger:   logger,
		started:  time.Now(),
	}
}

// ViewportRequest is the body of desktop creation and viewport updates.
type ViewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PointerRequest is one pointer event posted by a shell.
type PointerRequest struct {
	Type window.EventType     `json:"type"`
	App  window.ApplicationID `json:"app"`
	X    int                  `json:"x"`
	Y    int                  `json:"y"`
}

// ApplicationSummary is a catalog entry without its body.
type ApplicationSummary struct {
	ID     window.ApplicationID `json:"id"`
	Kind   content.Kind         `json:"kind"`
	Title  string               `json:"title"`
	Icon   string               `json:"icon,omitempty"`
	Window *window.Override     `json:"window,omitempty"`
}

// Root handles the status check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "webdesk",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"uptime":       time.Since(h.started).Round(time.Second).String(),
		"desktops":     h.sessions.Len(),
		"applications": h.catalog.Len(),
		"metrics":      h.metrics.Snapshot(),
	})
}

// ListApplications lists the catalog and the launcher icons
func (h *Handlers) ListApplications(c *gin.Context) {
	apps := h.catalog.List()
	out := make([]ApplicationSummary, 0, len(apps))
	for _, p := range apps {
		out = append(out, ApplicationSummary{
			ID:     p.ID,
			Kind:   p.Kind,
			Title:  p.Title,
			Icon:   p.Icon,
			Window: p.Window,
		})
	}
	dock, desktop := h.catalog.Launchers()

	c.JSON(http.StatusOK, gin.H{
		"applications": out,
		"dock":         dock,
		"desktop":      desktop,
	})
}

// ApplicationContent returns the payload of one application. Responses
// carry an ETag and honor If-None-Match.
func (h *Handlers) ApplicationContent(c *gin.Context) {
	app, ok := h.applicationParam(c)
	if !ok {
		return
	}

	p, err := h.catalog.Get(app)
	if err != nil {
		h.fail(c, err)
		return
	}

	tag := utils.ETag(string(p.ID), string(p.Kind), p.Title, p.Body, p.Src, p.Component, p.MIMEType)
	c.Header("ETag", tag)
	c.Header("Cache-Control", "no-cache")
	if utils.MatchETag(c.GetHeader("If-None-Match"), tag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateDesktop starts a desktop for a shell
func (h *Handlers) CreateDesktop(c *gin.Context) {
	var req ViewportRequest
	if !h.bind(c, &req) {
		return
	}
	if err := utils.ValidateViewport(req.Width, req.Height); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deskID, view, err := h.sessions.Create(window.Viewport{Width: req.Width, Height: req.Height})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"desktop_id": deskID,
		"view":       view,
	})
}

// GetDesktop returns the current view of a desktop
func (h *Handlers) GetDesktop(c *gin.Context) {
	deskID, ok := h.desktopParam(c)
	if !ok {
		return
	}

	view, err := h.sessions.View(deskID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteDesktop discards a desktop
func (h *Handlers) DeleteDesktop(c *gin.Context) {
	deskID, ok := h.desktopParam(c)
	if !ok {
		return
	}

	if err := h.sessions.Delete(deskID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"desktop_id": deskID,
	})
}

// SetViewport records a new viewport size
func (h *Handlers) SetViewport(c *gin.Context) {
	deskID, ok := h.desktopParam(c)
	if !ok {
		return
	}
	var req ViewportRequest
	if !h.bind(c, &req) {
		return
	}
	if err := utils.ValidateViewport(req.Width, req.Height); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.apply(c, deskID, window.Event{
		Type:     window.EventViewport,
		Viewport: window.Viewport{Width: req.Width, Height: req.Height},
	})
}

// OpenApplication opens or raises an application
func (h *Handlers) OpenApplication(c *gin.Context) {
	h.stackOp(c, window.EventOpen)
}

// FocusApplication raises and focuses an open application
func (h *Handlers) FocusApplication(c *gin.Context) {
	h.stackOp(c, window.EventFocus)
}

// CloseApplication closes an application
func (h *Handlers) CloseApplication(c *gin.Context) {
	h.stackOp(c, window.EventClose)
}

func (h *Handlers) stackOp(c *gin.Context, t window.EventType) {
	deskID, ok := h.desktopParam(c)
	if !ok {
		return
	}
	app, ok := h.applicationParam(c)
	if !ok {
		return
	}
	h.apply(c, deskID, window.Event{Type: t, App: app})
}

// Pointer feeds one pointer event to a desktop
func (h *Handlers) Pointer(c *gin.Context) {
	deskID, ok := h.desktopParam(c)
	if !ok {
		return
	}
	var req PointerRequest
	if !h.bind(c, &req) {
		return
	}

	switch req.Type {
	case window.EventTitleDown, window.EventResizeDown, window.EventWindowDown:
		if err := utils.ValidateApplicationID(string(req.App)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	case window.EventPointerMove, window.EventPointerUp:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pointer event type: " + string(req.Type)})
		return
	}
	if err := utils.ValidatePointer(req.X, req.Y); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.apply(c, deskID, window.Event{
		Type:    req.Type,
		App:     req.App,
		Pointer: window.Point{X: req.X, Y: req.Y},
	})
}

// apply runs ev and answers with what changed. Stack changes carry the
// full view; geometry changes carry the moved window, flagged as ended
// when the pointer-up closed the session.
func (h *Handlers) apply(c *gin.Context, deskID id.DesktopID, ev window.Event) {
	change, moved, view, err := h.sessions.Apply(deskID, ev)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"change": change.String()}
	switch change {
	case window.ChangeStack:
		resp["view"] = view
	case window.ChangeGeometry:
		resp["window"] = moved
		if ev.Type == window.EventPointerUp {
			resp["ended"] = true
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) desktopParam(c *gin.Context) (id.DesktopID, bool) {
	deskID, err := id.ParseDesktopID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return deskID, true
}

func (h *Handlers) applicationParam(c *gin.Context) (window.ApplicationID, bool) {
	app := c.Param("app")
	if err := utils.ValidateApplicationID(app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return window.ApplicationID(app), true
}

func (h *Handlers) bind(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxRequestSize)
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// fail maps domain errors to status codes.
func (h *Handlers) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, session.ErrDesktopNotFound), errors.Is(err, content.ErrUnknownApplication):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrTooManyDesktops):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
