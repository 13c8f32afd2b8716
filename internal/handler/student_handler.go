package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

type studentService interface {
	CountActive(ctx context.Context) (*dto.StudentsActive, error)
	Stats(ctx context.Context) (*dto.StudentStats, error)
	ListActive(ctx context.Context, req models.PageRequest, class string) (*dto.StudentList, error)
	ListByStatus(ctx context.Context, status string, req models.PageRequest) (*dto.StudentList, error)
	Search(ctx context.Context, query, status string) (*dto.StudentSearchResult, error)
	Detail(ctx context.Context, nis string) (*dto.StudentDetail, error)
	ByEnrollmentYear(ctx context.Context) (*dto.StudentsByYear, error)
}

// StudentHandler serves the student dashboard endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(svc studentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// Active godoc
// @Summary Count active students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/students-active [get]
func (h *StudentHandler) Active(c *gin.Context) {
	res, err := h.service.CountActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Active students fetched successfully")
}

// Stats godoc
// @Summary Student breakdowns by status, class and gender
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/students-stats [get]
func (h *StudentHandler) Stats(c *gin.Context) {
	res, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Student statistics fetched successfully")
}

// ActiveList godoc
// @Summary Paginated active students
// @Tags Students
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param class query string false "Class label"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/dashboard/students-active-list [get]
func (h *StudentHandler) ActiveList(c *gin.Context) {
	req, err := service.ParsePageRequest(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.ListActive(c.Request.Context(), req, c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Active student list fetched successfully")
}

// ByStatus godoc
// @Summary Paginated students in one status
// @Tags Students
// @Produce json
// @Param status query string false "Status (default Active)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/dashboard/students-by-status [get]
func (h *StudentHandler) ByStatus(c *gin.Context) {
	req, err := service.ParsePageRequest(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.ListByStatus(c.Request.Context(), c.Query("status"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, fmt.Sprintf("Students with status %s fetched successfully", res.Filter.Status))
}

// Search godoc
// @Summary Search students by name, NIS or parent name
// @Tags Students
// @Produce json
// @Param q query string true "Query, at least 2 characters"
// @Param status query string false "Status (default Active)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/dashboard/students-search [get]
func (h *StudentHandler) Search(c *gin.Context) {
	res, err := h.service.Search(c.Request.Context(), c.Query("q"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, fmt.Sprintf("Found %d students", res.TotalFound))
}

// Detail godoc
// @Summary Student detail by NIS
// @Tags Students
// @Produce json
// @Param nis path string true "NIS"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/dashboard/student-detail/{nis} [get]
func (h *StudentHandler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), c.Param("nis"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Student detail fetched successfully")
}

// ByYear godoc
// @Summary Students per enrollment year
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/students-by-year [get]
func (h *StudentHandler) ByYear(c *gin.Context) {
	res, err := h.service.ByEnrollmentYear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Students per enrollment year fetched successfully")
}
