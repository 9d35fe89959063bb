package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibelabs/pov-video/internal/httpapi/handlers"
	"github.com/vibelabs/pov-video/internal/httpapi/middleware"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", h.Ping)

	api := r.Group("/api")
	api.GET("/generate-video", h.APIInfo)
	api.POST("/generate-video", h.GenerateVideo)
	api.POST("/generate-video/async", h.GenerateVideoAsync)

	api.GET("/video-status/:id", h.GetVideoStatus)
	api.PUT("/video-status/:id", h.UpdateVideoStatus)
	api.DELETE("/video-status/:id", h.DeleteVideoStatus)

	api.GET("/download/:id", h.DownloadVideo)
	api.GET("/gallery", h.Gallery)

	return r
}
