package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Gallery lists completed generations, newest first.
func (h *Handler) Gallery(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	vids, err := h.Svc.Gallery(c.Request.Context(), limit)
	if err != nil {
		log.Printf("list gallery: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": vids,
		"count":  len(vids),
	})
}
