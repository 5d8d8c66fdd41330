package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/RetroShell/internal/apps"
	"github.com/GriffinCanCode/RetroShell/internal/apps/recyclebin"
	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/domain/shell"
	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RetroShell/internal/shared/id"
	"github.com/GriffinCanCode/RetroShell/internal/shared/types"
)

// Version is reported by the health endpoints.
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	shell   *shell.Shell
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(sh *shell.Shell, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{shell: sh, metrics: metrics, logger: logger}
}

// Register mounts the API routes on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/desktop", h.Desktop)
	api.POST("/intents", h.Dispatch)

	api.POST("/apps/:kind/open", h.OpenApp)

	api.POST("/windows/:kind/focus", h.windowIntent(shell.IntentFocus))
	api.POST("/windows/:kind/minimize", h.windowIntent(shell.IntentMinimize))
	api.POST("/windows/:kind/maximize", h.windowIntent(shell.IntentMaximize))
	api.PUT("/windows/:kind/position", h.MoveWindow)
	api.POST("/windows/:kind/leaf", h.LeafAction)
	api.DELETE("/windows/:kind", h.windowIntent(shell.IntentClose))

	api.POST("/taskbar/:kind", h.windowIntent(shell.IntentTaskbar))
	api.POST("/start-menu/toggle", h.simpleIntent(shell.IntentToggleStartMenu))
	api.POST("/start-menu/close", h.simpleIntent(shell.IntentCloseStartMenu))
	api.PUT("/icons/:kind", h.MoveIcon)

	api.GET("/documents", h.ListDocuments)
	api.POST("/documents", h.SaveDocument)
	api.GET("/documents/export", h.ExportDocuments)
	api.DELETE("/documents/:id", h.documentIntent(shell.IntentDelete))

	api.GET("/recycle-bin", h.ListRecycleBin)
	api.DELETE("/recycle-bin", h.simpleIntent(shell.IntentEmptyBin))
	api.POST("/recycle-bin/:id/restore", h.documentIntent(shell.IntentRestore))
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "RetroShell",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": Version,
		"shell":   h.shell.Stats(),
	})
}

// Desktop returns the full snapshot.
func (h *Handlers) Desktop(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.Snapshot())
}

// Dispatch applies a raw intent.
func (h *Handlers) Dispatch(c *gin.Context) {
	var in shell.Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	h.dispatch(c, in)
}

// OpenApp opens or activates an application.
func (h *Handlers) OpenApp(c *gin.Context) {
	var req types.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	source := shell.Source(req.Source)
	switch source {
	case "", shell.SourceDesktop, shell.SourceStartMenu:
	default:
		badRequest(c, errors.New("source must be desktop or start_menu"))
		return
	}
	h.dispatch(c, shell.Intent{Type: shell.IntentOpen, Kind: kindParam(c), Source: source})
}

// MoveWindow commits a window drag.
func (h *Handlers) MoveWindow(c *gin.Context) {
	h.position(c, shell.IntentMove)
}

// MoveIcon commits an icon drag.
func (h *Handlers) MoveIcon(c *gin.Context) {
	h.position(c, shell.IntentMoveIcon)
}

func (h *Handlers) position(c *gin.Context, t shell.IntentType) {
	var req types.PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.dispatch(c, shell.Intent{Type: t, Kind: kindParam(c), X: *req.X, Y: *req.Y})
}

// LeafAction forwards a gesture to a window's body.
func (h *Handlers) LeafAction(c *gin.Context) {
	var action apps.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		badRequest(c, err)
		return
	}
	h.dispatch(c, shell.Intent{Type: shell.IntentLeaf, Kind: kindParam(c), Action: &action})
}

// ListDocuments lists live documents, optionally filtered by a glob.
func (h *Handlers) ListDocuments(c *gin.Context) {
	docs, err := h.shell.Documents(c.Query("pattern"))
	if err != nil {
		badRequest(c, err)
		return
	}

	entries := make([]documentEntry, len(docs))
	for i, d := range docs {
		entries[i] = documentEntry{Document: d, Info: vfs.Describe(d)}
	}
	c.JSON(http.StatusOK, gin.H{
		"folder":    vfs.Documents,
		"documents": entries,
		"count":     len(entries),
	})
}

type documentEntry struct {
	vfs.Document
	Info vfs.Info `json:"info"`
}

// SaveDocument creates or overwrites a document by name.
func (h *Handlers) SaveDocument(c *gin.Context) {
	var req types.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.dispatch(c, shell.Intent{Type: shell.IntentSave, Name: req.Name, Content: req.Content})
}

// ListRecycleBin renders the bin.
func (h *Handlers) ListRecycleBin(c *gin.Context) {
	c.JSON(http.StatusOK, recyclebin.Render(h.shell.Recycled()))
}

func (h *Handlers) windowIntent(t shell.IntentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, shell.Intent{Type: t, Kind: kindParam(c)})
	}
}

func (h *Handlers) documentIntent(t shell.IntentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, shell.Intent{Type: t, DocumentID: id.DocumentID(c.Param("id"))})
	}
}

func (h *Handlers) simpleIntent(t shell.IntentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, shell.Intent{Type: t})
	}
}

func (h *Handlers) dispatch(c *gin.Context, in shell.Intent) {
	res, err := h.shell.Dispatch(in)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func kindParam(c *gin.Context) catalog.Kind {
	return catalog.Kind(c.Param("kind"))
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handlers) logError(msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
}
