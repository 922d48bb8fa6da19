package utils

import (
	"PriVault/internal/apperrors"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes a success JSON response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{
		"code": 0,
		"msg":  "ok",
		"data": data,
	})
}

// Fail writes an error JSON response, mapping AppError codes to HTTP status.
func Fail(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPCode, gin.H{
			"code": string(appErr.Code),
			"msg":  appErr.Message,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"code": string(apperrors.CodeInternalError),
		"msg":  err.Error(),
	})
}
