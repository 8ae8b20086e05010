package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "growfin.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Validation failures carry the full error
// list; state machine refusals echo the record's current status.
func Error(c *gin.Context, err error) {
	if ve, ok := domainerrors.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  ve.Errors,
		})
		return
	}

	if se, ok := domainerrors.AsStateTransitionError(err); ok {
		c.JSON(http.StatusConflict, gin.H{
			"message":        se.Error(),
			"current_status": se.CurrentStatus,
		})
		return
	}

	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		switch err {
		case domainerrors.ErrNotFound:
			appErr = domainerrors.NotFound("Resource not found")
		case domainerrors.ErrForbidden:
			appErr = domainerrors.Forbidden("Access forbidden")
		case domainerrors.ErrUnauthorized:
			appErr = domainerrors.Unauthorized("Unauthorized")
		default:
			appErr = domainerrors.InternalError(err)
		}
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
