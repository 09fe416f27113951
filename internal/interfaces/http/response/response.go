package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/pkg/utils"
)

// Success sends a success envelope with a data payload
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Message sends a success envelope carrying only a message
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

// Paginated sends a success envelope with list data and paging metadata
func Paginated(c *gin.Context, data interface{}, meta utils.PaginationMeta) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"meta":    meta,
	})
}

// Error sends an error envelope. AppErrors keep their status and message;
// anything else becomes a 500 with the cause hidden from the client.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"success": false,
		"message": appErr.Message,
	})
}

// ValidationError sends a 400 envelope for request binding failures
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "invalid request",
		"errors":  []string{err.Error()},
	})
}
