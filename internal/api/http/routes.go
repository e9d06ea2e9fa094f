package http

import (
	"github.com/GriffinCanCode/webdesk/internal/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// Register mounts the JSON API on r. stream, when set, serves the
// desktop WebSocket.
func Register(r gin.IRouter, h *Handlers, stream gin.HandlerFunc) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.GET("/applications", h.ListApplications)
	r.GET("/applications/:app/content", middleware.Gzip(gzip.DefaultCompression), h.ApplicationContent)

	desktops := r.Group("/desktops")
	{
		desktops.POST("", h.CreateDesktop)
		desktops.GET("/:id", h.GetDesktop)
		desktops.DELETE("/:id", h.DeleteDesktop)
		desktops.PUT("/:id/viewport", h.SetViewport)
		desktops.POST("/:id/apps/:app/open", h.OpenApplication)
		desktops.POST("/:id/apps/:app/focus", h.FocusApplication)
		desktops.DELETE("/:id/apps/:app", h.CloseApplication)
		desktops.POST("/:id/pointer", h.Pointer)
		if stream != nil {
			desktops.GET("/:id/stream", stream)
		}
	}
}
