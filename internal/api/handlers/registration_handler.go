package handlers

import (
	"net/http"

	serviceInterfaces "school-api/internal/interfaces/service"
	"school-api/pkg/validator"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles course registration HTTP requests
type RegistrationHandler struct {
	registrationService serviceInterfaces.RegistrationService
}

func NewRegistrationHandler(registrationService serviceInterfaces.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
	}
}

// Register handles POST /api/v1/registrations
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req serviceInterfaces.CreateRegistrationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	registration, err := h.registrationService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Registration created",
		Data:    registration,
	})
}

// Update handles PATCH /api/v1/registrations/:id
func (h *RegistrationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req serviceInterfaces.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	registration, err := h.registrationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Registration updated",
		Data:    registration,
	})
}

// Deregister handles DELETE /api/v1/registrations/:id
func (h *RegistrationHandler) Deregister(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.registrationService.Deregister(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Registration removed",
	})
}

// GetByStudent handles GET /api/v1/students/:id/registration
func (h *RegistrationHandler) GetByStudent(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	registration, err := h.registrationService.GetByStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    registration,
	})
}
