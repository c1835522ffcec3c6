package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrInvalidRefreshToken, http.StatusUnauthorized},

	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrAccountBlocked, http.StatusForbidden},
	{domain.ErrAccountInactive, http.StatusForbidden},

	{domain.ErrDuplicatePhone, http.StatusConflict},
	{domain.ErrConflictingOTPRequest, http.StatusConflict},
	{domain.ErrLastRoutePolicy, http.StatusConflict},

	{domain.ErrOTPNotFound, http.StatusNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrAdminNotFound, http.StatusNotFound},
	{domain.ErrBlockNotFound, http.StatusNotFound},

	{domain.ErrOTPExpired, http.StatusBadRequest},
	{domain.ErrOTPMismatch, http.StatusBadRequest},
	{domain.ErrPhoneMismatch, http.StatusBadRequest},
	{domain.ErrAlreadyActive, http.StatusBadRequest},
	{domain.ErrAlreadyActivated, http.StatusBadRequest},
	{domain.ErrInvalidPhone, http.StatusBadRequest},
	{domain.ErrWeakPassword, http.StatusBadRequest},
	{domain.ErrInvalidBlock, http.StatusBadRequest},

	{domain.ErrOTPMaxAttempts, http.StatusTooManyRequests},
	{domain.ErrOTPResendThrottled, http.StatusTooManyRequests},
}

// StatusFor maps a service error to its HTTP status; unknown errors are 500
func StatusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Internal errors are logged and
// replaced with a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("route", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
