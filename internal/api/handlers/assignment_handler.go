package handlers

import (
	"net/http"

	serviceInterfaces "school-api/internal/interfaces/service"
	"school-api/pkg/validator"

	"github.com/gin-gonic/gin"
)

// AssignmentHandler handles teacher-course assignment HTTP requests
type AssignmentHandler struct {
	assignmentService serviceInterfaces.AssignmentService
}

func NewAssignmentHandler(assignmentService serviceInterfaces.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// Create handles POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req serviceInterfaces.CreateAssignmentRequest

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

	assignment, err := h.assignmentService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Assignment created",
		Data:    assignment,
	})
}

// Update handles PATCH /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req serviceInterfaces.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Assignment updated",
		Data:    assignment,
	})
}

// Delete handles DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Assignment deleted",
	})
}

// GetByTeacher handles GET /api/v1/teachers/:id/assignments
func (h *AssignmentHandler) GetByTeacher(c *gin.Context) {
	teacherID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.GetByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    assignments,
	})
}
