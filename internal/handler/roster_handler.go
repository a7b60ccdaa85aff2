package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svuportal/portal-backend/internal/response"
	"github.com/svuportal/portal-backend/internal/service"
)

// RosterHandler handles the teacher portal's roster endpoints.
type RosterHandler struct {
	rosterService *service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// ListStudents godoc
// GET /api/v1/teacher/students?q=&department=&year=&sort=&direction=
// Returns the roster narrowed by search query, department and year, then
// ordered by the requested sort state. Filtering composes before sorting.
func (h *RosterHandler) ListStudents(c *gin.Context) {
	filter := service.RosterFilter{
		Query:      c.Query("q"),
		Department: c.Query("department"),
		Year:       c.Query("year"),
	}
	st, ok := sortStateFromQuery(c, service.DefaultRosterSort)
	if !ok {
		return
	}

	students, err := h.rosterService.List(c.Request.Context(), filter, st)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSortField) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownSortField)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"students": students,
		"total":    len(students),
		"sort":     st,
	})
}

// ListCourses godoc
// GET /api/v1/teacher/courses
// Returns the per-course aggregates for the teacher dashboard.
func (h *RosterHandler) ListCourses(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"courses": h.rosterService.CourseStats(c.Request.Context()),
	})
}
