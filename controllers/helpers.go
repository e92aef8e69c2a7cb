package controllers

import (
	"errors"
	"net/http"
	"os"

	"citizen-services-api/config"
	"citizen-services-api/services"

	"github.com/gin-gonic/gin"
)

func newRequestService() *services.RequestService {
	return services.NewRequestService(config.DB, os.Getenv("SUPERADMIN_CODE"))
}

func newReportService() *services.ReportService {
	return services.NewReportService(config.DB)
}

// respondEngineError maps lifecycle engine errors onto HTTP statuses. Unknown
// errors are store failures: the transaction already rolled back, so callers
// only ever see a generic 500.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrDepartmentNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrAdminNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrServiceInactive),
		errors.Is(err, services.ErrPaymentRequired),
		errors.Is(err, services.ErrPaymentNotSuccessful),
		errors.Is(err, services.ErrPaymentServiceMismatch),
		errors.Is(err, services.ErrInvalidRequestType),
		errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentAlreadyLinked),
		errors.Is(err, services.ErrNoOpTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func currentAdminID(c *gin.Context) (string, bool) {
	v, exists := c.Get("adminID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
