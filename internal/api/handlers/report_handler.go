package handlers

import (
	"net/http"
	"strconv"

	interfaces "school-api/internal/interfaces/infrastructure"
	serviceInterfaces "school-api/internal/interfaces/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler serves the read models joining across the registration graph.
type ReportHandler struct {
	reportRepo   interfaces.ReportRepository
	auditService serviceInterfaces.AuditService
}

func NewReportHandler(reportRepo interfaces.ReportRepository, auditService serviceInterfaces.AuditService) *ReportHandler {
	return &ReportHandler{
		reportRepo:   reportRepo,
		auditService: auditService,
	}
}

// Roster handles GET /api/v1/reports/roster?grade_id=...&section_id=...
func (h *ReportHandler) Roster(c *gin.Context) {
	gradeID, err := uuid.Parse(c.Query("grade_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid grade_id",
			Errors:  err.Error(),
		})
		return
	}
	sectionID, err := uuid.Parse(c.Query("section_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid section_id",
			Errors:  err.Error(),
		})
		return
	}

	rows, err := h.reportRepo.Roster(c.Request.Context(), gradeID, sectionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    rows,
	})
}

// Transcript handles GET /api/v1/reports/transcript/:student_id
func (h *ReportHandler) Transcript(c *gin.Context) {
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	rows, err := h.reportRepo.Transcript(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    rows,
	})
}

// AuditTrail handles GET /api/v1/reports/audit?limit=50
func (h *ReportHandler) AuditTrail(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, APIResponse{
				Success: false,
				Message: "Invalid limit",
			})
			return
		}
		limit = parsed
	}

	entries, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    entries,
	})
}
