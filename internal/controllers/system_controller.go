package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-be/internal/middleware"
)

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CSRFToken handles GET /api/csrf-token
func CSRFToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"csrfToken": middleware.CSRFToken(c)})
}
