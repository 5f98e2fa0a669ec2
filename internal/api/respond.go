package api

import (
	"net/http"
	"strconv"

	"family-gifts/internal/apperr"
	"family-gifts/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a domain error to its status code. Errors without a kind
// are internal: the detail is logged, never returned.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.KindAuthentication:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperr.KindAuthorization:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.L.Error("unexpected error handling request",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	userID, ok := v.(uint)
	if !ok {
		logger.L.Error("userID in context has unexpected type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryID parses a numeric query parameter. Required parameters answer 400
// when absent; optional ones return (nil, true).
func queryID(c *gin.Context, name string, required bool) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
			return nil, false
		}
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	v := uint(id)
	return &v, true
}
