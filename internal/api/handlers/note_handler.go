package handlers

import (
	"net/http"

	serviceInterfaces "school-api/internal/interfaces/service"
	"school-api/pkg/validator"

	"github.com/gin-gonic/gin"
)

// NoteHandler handles score note HTTP requests
type NoteHandler struct {
	noteService serviceInterfaces.NoteService
}

func NewNoteHandler(noteService serviceInterfaces.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// Create handles POST /api/v1/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req serviceInterfaces.CreateNoteRequest

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

	note, err := h.noteService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Note recorded",
		Data:    note,
	})
}

// Update handles PATCH /api/v1/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req serviceInterfaces.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Note updated",
		Data:    note,
	})
}

// Delete handles DELETE /api/v1/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Note deleted",
	})
}

// GetByStudent handles GET /api/v1/students/:id/notes
func (h *NoteHandler) GetByStudent(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notes, err := h.noteService.GetByStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    notes,
	})
}
