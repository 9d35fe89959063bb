package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibelabs/pov-video/internal/video"
)

// GetVideoStatus returns the latest checkpoint for a job. Unknown ids are 404
// unless the demo stub mode is on, which fabricates (and stores) a completed
// record the way the original demo did.
func (h *Handler) GetVideoStatus(c *gin.Context) {
	videoID := c.Param("id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	rec, err := h.Svc.Statuses().Get(c.Request.Context(), videoID)
	if err != nil {
		if errors.Is(err, video.ErrNotFound) {
			if h.Cfg.DemoStatusStub {
				stub := demoStubStatus(videoID)
				if err := h.Svc.Statuses().Create(c.Request.Context(), stub); err != nil && !errors.Is(err, video.ErrDuplicateID) {
					log.Printf("store demo stub video_id=%s err=%v", videoID, err)
				}
				c.JSON(http.StatusOK, stub)
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		log.Printf("get status video_id=%s err=%v", videoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// UpdateVideoStatus merges a partial body into the record. The id in the body
// is ignored; completedAt is managed by the store.
func (h *Handler) UpdateVideoStatus(c *gin.Context) {
	videoID := c.Param("id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	var upd video.StatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec, err := h.Svc.Statuses().Update(c.Request.Context(), videoID, upd)
	if err != nil {
		if errors.Is(err, video.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		log.Printf("update status video_id=%s err=%v", videoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// DeleteVideoStatus removes the record, 404 when it never existed.
func (h *Handler) DeleteVideoStatus(c *gin.Context) {
	videoID := c.Param("id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	existed, err := h.Svc.Statuses().Delete(c.Request.Context(), videoID)
	if err != nil {
		log.Printf("delete status video_id=%s err=%v", videoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Video status deleted successfully"})
}

func demoStubStatus(videoID string) *video.VideoStatus {
	now := time.Now()
	return &video.VideoStatus{
		VideoID:      videoID,
		Status:       video.StatusCompleted,
		Progress:     100,
		CurrentStep:  "Video generation completed",
		VideoURL:     "https://storage.googleapis.com/workspace-videos/pov-historical-demo.mp4",
		ThumbnailURL: "https://placehold.co/1080x1920?text=POV+Historical+Thumbnail",
		Subtitles:    "Your historical journey begins...",
		CreatedAt:    now,
		CompletedAt:  &now,
	}
}
