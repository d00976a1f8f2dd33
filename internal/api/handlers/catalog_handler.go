package handlers

import (
	"net/http"

	"school-api/internal/service"
	"school-api/pkg/validator"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles CRUD for the supporting records: specialities,
// teachers, courses, grades, sections, schedules, tutors and students.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

type tutorRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

func (h *CatalogHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return false
	}
	if err := validator.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return false
	}
	return true
}

// CreateSpeciality handles POST /api/v1/specialities
func (h *CatalogHandler) CreateSpeciality(c *gin.Context) {
	var req nameRequest
	if !h.bind(c, &req) {
		return
	}

	speciality, err := h.catalogService.CreateSpeciality(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: speciality})
}

// GetSpeciality handles GET /api/v1/specialities/:id
func (h *CatalogHandler) GetSpeciality(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	speciality, err := h.catalogService.GetSpeciality(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if speciality == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "speciality not found"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: speciality})
}

// ListSpecialities handles GET /api/v1/specialities
func (h *CatalogHandler) ListSpecialities(c *gin.Context) {
	specialities, err := h.catalogService.ListSpecialities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: specialities})
}

// DeleteSpeciality handles DELETE /api/v1/specialities/:id
func (h *CatalogHandler) DeleteSpeciality(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSpeciality(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Speciality deleted"})
}

// CreateTeacher handles POST /api/v1/teachers
func (h *CatalogHandler) CreateTeacher(c *gin.Context) {
	var req service.CreateTeacherRequest
	if !h.bind(c, &req) {
		return
	}

	teacher, err := h.catalogService.CreateTeacher(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: teacher})
}

// GetTeacher handles GET /api/v1/teachers/:id
func (h *CatalogHandler) GetTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	teacher, err := h.catalogService.GetTeacher(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if teacher == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "teacher not found"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: teacher})
}

// UpdateTeacher handles PATCH /api/v1/teachers/:id
func (h *CatalogHandler) UpdateTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTeacherRequest
	if !h.bind(c, &req) {
		return
	}

	teacher, err := h.catalogService.GetTeacher(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if teacher == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "teacher not found"})
		return
	}

	updated, err := h.catalogService.UpdateTeacher(c.Request.Context(), teacher, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: updated})
}

// ListTeachers handles GET /api/v1/teachers
func (h *CatalogHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.catalogService.ListTeachers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: teachers})
}

// DeleteTeacher handles DELETE /api/v1/teachers/:id
func (h *CatalogHandler) DeleteTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteTeacher(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Teacher deleted"})
}

// CreateCourse handles POST /api/v1/courses
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req service.CreateCourseRequest
	if !h.bind(c, &req) {
		return
	}

	course, err := h.catalogService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: course})
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	course, err := h.catalogService.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if course == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "course not found"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: course})
}

// UpdateCourse handles PATCH /api/v1/courses/:id
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateCourseRequest
	if !h.bind(c, &req) {
		return
	}

	course, err := h.catalogService.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if course == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "course not found"})
		return
	}

	updated, err := h.catalogService.UpdateCourse(c.Request.Context(), course, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: updated})
}

// ListCourses handles GET /api/v1/courses
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.catalogService.ListCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: courses})
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCourse(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Course deleted"})
}

// CreateGrade handles POST /api/v1/grades
func (h *CatalogHandler) CreateGrade(c *gin.Context) {
	var req service.CreateGradeRequest
	if !h.bind(c, &req) {
		return
	}

	grade, err := h.catalogService.CreateGrade(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: grade})
}

// GetGrade handles GET /api/v1/grades/:id
func (h *CatalogHandler) GetGrade(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	grade, err := h.catalogService.GetGrade(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if grade == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "grade not found"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: grade})
}

// UpdateGrade handles PATCH /api/v1/grades/:id
func (h *CatalogHandler) UpdateGrade(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateGradeRequest
	if !h.bind(c, &req) {
		return
	}

	grade, err := h.catalogService.GetGrade(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if grade == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "grade not found"})
		return
	}

	updated, err := h.catalogService.UpdateGrade(c.Request.Context(), grade, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: updated})
}

// ListGrades handles GET /api/v1/grades
func (h *CatalogHandler) ListGrades(c *gin.Context) {
	grades, err := h.catalogService.ListGrades(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: grades})
}

// DeleteGrade handles DELETE /api/v1/grades/:id
func (h *CatalogHandler) DeleteGrade(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteGrade(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Grade deleted"})
}

// CreateSection handles POST /api/v1/sections
func (h *CatalogHandler) CreateSection(c *gin.Context) {
	var req nameRequest
	if !h.bind(c, &req) {
		return
	}

	section, err := h.catalogService.CreateSection(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: section})
}

// GetSection handles GET /api/v1/sections/:id
func (h *CatalogHandler) GetSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	section, err := h.catalogService.GetSection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if section == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "section not found"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: section})
}

// ListSections handles GET /api/v1/sections
func (h *CatalogHandler) ListSections(c *gin.Context) {
	sections, err := h.catalogService.ListSections(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: sections})
}

// DeleteSection handles DELETE /api/v1/sections/:id
func (h *CatalogHandler) DeleteSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSection(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Section deleted"})
}

// CreateSchedule handles POST /api/v1/schedules
func (h *CatalogHandler) CreateSchedule(c *gin.Context) {
	var req service.CreateScheduleRequest
	if !h.bind(c, &req) {
		return
	}

	schedule, err := h.catalogService.CreateSchedule(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid schedule",
			Errors:  err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: schedule})
}

// ListSchedules handles GET /api/v1/schedules
func (h *CatalogHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.catalogService.ListSchedules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: schedules})
}

// DeleteSchedule handles DELETE /api/v1/schedules/:id
func (h *CatalogHandler) DeleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSchedule(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Schedule deleted"})
}

// CreateTutor handles POST /api/v1/tutors
func (h *CatalogHandler) CreateTutor(c *gin.Context) {
	var req tutorRequest
	if !h.bind(c, &req) {
		return
	}

	tutor, err := h.catalogService.CreateTutor(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: tutor})
}

// ListTutors handles GET /api/v1/tutors
func (h *CatalogHandler) ListTutors(c *gin.Context) {
	tutors, err := h.catalogService.ListTutors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: tutors})
}

// DeleteTutor handles DELETE /api/v1/tutors/:id
func (h *CatalogHandler) DeleteTutor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteTutor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Tutor deleted"})
}

// CreateStudent handles POST /api/v1/students
func (h *CatalogHandler) CreateStudent(c *gin.Context) {
	var req service.CreateStudentRequest
	if !h.bind(c, &req) {
		return
	}

	student, err := h.catalogService.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: student})
}

// GetStudent handles GET /api/v1/students/:id
func (h *CatalogHandler) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	student, err := h.catalogService.GetStudent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "student not found"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: student})
}

// ListStudents handles GET /api/v1/students
func (h *CatalogHandler) ListStudents(c *gin.Context) {
	students, err := h.catalogService.ListStudents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: students})
}

// UpdateStudent handles PATCH /api/v1/students/:id
func (h *CatalogHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	student, err := h.catalogService.GetStudent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: "student not found"})
		return
	}

	updated, err := h.catalogService.UpdateStudent(c.Request.Context(), student, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: updated})
}

// DeleteStudent handles DELETE /api/v1/students/:id
func (h *CatalogHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteStudent(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "Student deleted"})
}
