package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"greychat/store"
)

func Success(c *gin.Context, data any) {
	if data == nil {
		data = gin.H{"message": "ok"}
	}
	c.JSON(http.StatusOK, data)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": message})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"message": message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

// StoreError translates the store taxonomy to HTTP: missing entities are
// 404, invariant violations are 400, anything else is 500 with the detail
// kept out of the response.
func StoreError(c *gin.Context, err error) {
	switch store.KindOf(err) {
	case store.KindNotFound:
		NotFound(c, err.Error())
	case store.KindInvalidOperation:
		BadRequest(c, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("store failure")
		InternalError(c, "internal server error")
	}
}
