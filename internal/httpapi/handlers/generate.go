package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibelabs/pov-video/internal/video"
)

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// GenerateVideo runs the full pipeline synchronously and returns the final
// result. Stage failures come back as a well-formed success=false body, never
// as an HTTP error.
func (h *Handler) GenerateVideo(c *gin.Context) {
	var req video.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Prompt is required"})
		return
	}

	resp, err := h.Svc.Generate(c.Request.Context(), &req)
	if err != nil {
		var verr *video.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Message})
			return
		}
		log.Printf("generate video: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error during video generation",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateVideoAsync registers the job, persists its row and hands it to the
// worker via the queue. Clients poll the status endpoint for progress.
func (h *Handler) GenerateVideoAsync(c *gin.Context) {
	if h.Queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Async generation is not available"})
		return
	}

	var req video.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Prompt is required"})
		return
	}

	videoID, err := h.Svc.Register(c.Request.Context(), &req)
	if err != nil {
		var verr *video.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Message})
			return
		}
		log.Printf("register generation job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	if h.Repo != nil {
		j := &video.Job{
			ID:        videoID,
			SessionID: req.SessionID,
			Prompt:    req.Prompt,
			Duration:  req.Duration,
			Status:    video.JobQueued,
		}
		if err := h.Repo.CreateJob(c.Request.Context(), j); err != nil {
			log.Printf("create job row video_id=%s err=%v", videoID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
			return
		}
	}

	if err := h.Queue.PublishJob(c.Request.Context(), videoID); err != nil {
		log.Printf("publish job video_id=%s err=%v", videoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to enqueue generation job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success":   true,
		"videoId":   videoID,
		"status":    video.StatusPending,
		"sessionId": req.SessionID,
	})
}

// APIInfo documents the endpoints for anyone poking the API root.
func (h *Handler) APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "POV Historical Video Generator API",
		"version": "2.0.0",
		"endpoints": gin.H{
			"POST /api/generate-video":       "Generate a new POV historical video",
			"POST /api/generate-video/async": "Queue a generation job for the worker",
			"GET /api/video-status/:id":      "Check video generation status",
			"PUT /api/video-status/:id":      "Apply a partial status update",
			"DELETE /api/video-status/:id":   "Delete a status record",
			"GET /api/download/:id":          "Prepare a video download",
			"GET /api/gallery":               "List completed generations",
		},
	})
}
