package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"internhub-api/internal/logger"
	"internhub-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps service errors to HTTP statuses. Anything unrecognised is
// logged and reported as a 500 with fallbackMsg.
func respondError(c *gin.Context, log logger.Logger, err error, fallbackMsg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidState):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error(fallbackMsg, map[string]interface{}{
			"error":  err,
			"method": c.Request.Method,
			"path":   c.FullPath(),
		})
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// FormatValidationErrors flattens validator errors into one message.
func FormatValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed: " + err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		var msg string
		switch fieldError.Tag() {
		case "required":
			msg = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			msg = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "url":
			msg = fmt.Sprintf("Field '%s' must be a valid URL", fieldName)
		case "min":
			msg = fmt.Sprintf("Field '%s' must be at least %s", fieldName, fieldError.Param())
		case "max":
			msg = fmt.Sprintf("Field '%s' must be at most %s", fieldName, fieldError.Param())
		case "oneof":
			msg = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "uuid":
			msg = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		default:
			msg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		}
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return "Validation failed: " + strings.Join(msgs, "; ")
}
