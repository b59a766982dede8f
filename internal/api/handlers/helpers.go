package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"internhub-api/internal/api/middleware"
	"internhub-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

// requireIdentity writes a 401 when the auth middleware did not run.
func requireIdentity(c *gin.Context) (models.Identity, bool) {
	id, err := middleware.GetIdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return models.Identity{}, false
	}
	return id, true
}

func parseUUIDParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
func bindAndValidate(c *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	return validateStruct(c, v, req)
}

func validateStruct(c *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := v.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": FormatValidationErrors(err)})
		return false
	}
	return true
}

// bindPatch decodes a partial update and returns the top-level keys the client
// sent, so services can reject fields outside their allow-list.
func bindPatch(c *gin.Context, v *validator.Validate, req interface{}) ([]string, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return nil, false
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: expected a JSON object"})
		return nil, false
	}
	if len(keys) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body has no fields to update"})
		return nil, false
	}
	if err := json.Unmarshal(raw, req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for field '" + typeErr.Field + "'"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return nil, false
	}
	if !validateStruct(c, v, req) {
		return nil, false
	}

	fields := make([]string, 0, len(keys))
	for k := range keys {
		fields = append(fields, k)
	}
	return fields, true
}
