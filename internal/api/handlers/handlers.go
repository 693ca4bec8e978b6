package handlers

import (
	"errors"
	"net/http"

	"github.com/Marga-Ghale/ora-group-views/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	GroupDetails *GroupDetailsHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		GroupDetails: NewGroupDetailsHandler(services.GroupDetails),
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c *gin.Context, err error) {
	var storeFailure *service.StoreFailure
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.As(err, &storeFailure):
		_ = c.Error(err)
		logrus.WithField("step", storeFailure.Step).WithError(storeFailure.Err).Error("[Views] Store read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
