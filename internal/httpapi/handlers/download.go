package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibelabs/pov-video/internal/video"
)

// DownloadVideo prepares a download descriptor for a generated video.
// Format and quality are validated before any URL is assembled.
func (h *Handler) DownloadVideo(c *gin.Context) {
	videoID := c.Param("id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	format := c.Query("format")
	quality := c.Query("quality")

	var (
		videoURL string
		prompt   string
		duration = 6
	)
	if h.Repo != nil {
		if v, err := h.Repo.GetVideoByID(c.Request.Context(), videoID); err == nil {
			videoURL = v.VideoURL
			prompt = v.Prompt
			duration = v.Duration
		}
	}
	if videoURL == "" {
		if rec, err := h.Svc.Statuses().Get(c.Request.Context(), videoID); err == nil {
			videoURL = rec.VideoURL
		}
	}

	info, err := video.BuildDownload(videoID, videoURL, prompt, format, quality, duration)
	if err != nil {
		var verr *video.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}
