package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garage-be/internal/service"
)

// pathID parses an integer path parameter. Anything else matches no resource.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body, replying 400 when it is malformed or incomplete
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing data",
			"details": err.Error(),
		})
		return false
	}
	return true
}

func writeError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := http.StatusBadRequest
		if svcErr.Kind == service.KindNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": svcErr.Message,
		})
		return
	}

	logger.Errorw("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
