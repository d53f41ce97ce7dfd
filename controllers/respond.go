package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChurchLoop/repositories"
)

// Every endpoint speaks the same envelope: {success, data} on the happy path,
// {success, error} on failure, {success, message} for acknowledgements.

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondRepoErr maps ErrNotFound to a 404 with the resource-specific message
// and everything else to a 500 carrying the underlying error text.
func respondRepoErr(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(c, http.StatusNotFound, notFoundMsg)
		return
	}
	respondError(c, http.StatusInternalServerError, err.Error())
}
