package response

import (
	"github.com/gin-gonic/gin"

	"petoverflow/internal/models"
)

// Error writes the uniform error payload.
func Error(c *gin.Context, status int, message, details string) {
	c.JSON(status, models.ErrorResponse{
		Code:    status,
		Message: message,
		Details: details,
	})
}
