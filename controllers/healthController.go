package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is the unauthenticated liveness endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
