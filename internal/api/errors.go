package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holybond/holybond-v2/backend/internal/service"
)

// respondError translates service sentinel errors into HTTP responses.
// Anything unclassified is a 500 and its detail stays out of the response.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrAuthRequired),
		errors.Is(err, service.ErrInvalidCredential),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrRoleForbidden),
		errors.Is(err, service.ErrSelfActionForbidden),
		errors.Is(err, service.ErrBlocked):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrStorageExceeded):
		status = http.StatusRequestEntityTooLarge
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
