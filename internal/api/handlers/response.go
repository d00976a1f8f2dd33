package handlers

import (
	"errors"
	"net/http"

	"school-api/internal/domain/school"
	"school-api/internal/engine"
	"school-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respondError maps domain errors onto HTTP statuses. Conflicts carry their
// kind and offending fields so clients can react without parsing messages.
func respondError(c *gin.Context, err error) {
	if conflictErr, ok := engine.AsConflict(err); ok {
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Message: conflictErr.Message,
			Errors:  conflictErr,
		})
		return
	}

	var notFoundErr *engine.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, APIResponse{
			Success: false,
			Message: notFoundErr.Error(),
		})
		return
	}

	var protectedErr *school.ProtectedReferenceError
	if errors.As(err, &protectedErr) {
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Message: protectedErr.Error(),
		})
		return
	}

	var duplicateErr *service.DuplicateNameError
	if errors.As(err, &duplicateErr) {
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Message: duplicateErr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Message: "Internal server error",
		Errors:  err.Error(),
	})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid " + name,
			Errors:  err.Error(),
		})
		return uuid.Nil, false
	}
	return id, true
}
