package handlers

import (
	"log"

	"github.com/Mieeelll/Taskflow-To-Do-App/internal/dto"

	"github.com/gin-gonic/gin"
)

// respondError writes the uniform error envelope.
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.ErrorResponse{Error: msg, Status: status})
}

// respondInternal logs the real error and sends a generic 500.
func respondInternal(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	respondError(c, 500, "Internal server error")
}
