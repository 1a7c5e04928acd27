package handler

import (
	"errors"
	"net/http"

	"github.com/AbhishekS200607/quickaid/internal/logging"
	"github.com/AbhishekS200607/quickaid/internal/repository"
	"github.com/AbhishekS200607/quickaid/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service and repository errors to a status and a client
// message. Anything unrecognised is a store failure: it is logged and the
// caller only sees fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidPhoneFormat),
		errors.Is(err, service.ErrPasswordRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorMessage(err)})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
	case errors.Is(err, repository.ErrContactNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
	default:
		logging.Log.WithError(err).WithField("path", c.Request.URL.Path).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindJSON decodes the body into dst. On failure it answers 413 for an
// oversized body and 400 with badRequest otherwise, and returns false.
func bindJSON(c *gin.Context, dst any, badRequest string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": badRequest})
	return false
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingField):
		return "Missing required fields"
	case errors.Is(err, service.ErrInvalidPhoneFormat):
		return "Invalid phone number format"
	case errors.Is(err, service.ErrPasswordRequired):
		return "Password required"
	}
	return err.Error()
}
