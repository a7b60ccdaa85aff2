package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svuportal/portal-backend/internal/middleware"
	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/response"
	"github.com/svuportal/portal-backend/internal/service"
	"github.com/svuportal/portal-backend/internal/sorting"
)

// ResultsHandler handles the student portal's results endpoints.
type ResultsHandler struct {
	resultService *service.ResultService
	sessions      *service.SessionStore
}

// NewResultsHandler creates a new ResultsHandler.
func NewResultsHandler(resultService *service.ResultService, sessions *service.SessionStore) *ResultsHandler {
	return &ResultsHandler{
		resultService: resultService,
		sessions:      sessions,
	}
}

// GetResults godoc
// GET /api/v1/student/results?term=&sort=&direction=&derive=
// Returns the student's result set ordered by the requested sort state.
// With derive=true, grade and status are recomputed from the semester
// score instead of the stored values.
func (h *ResultsHandler) GetResults(c *gin.Context) {
	identity, ok := h.currentStudent(c)
	if !ok {
		return
	}

	st, ok := sortStateFromQuery(c, service.DefaultResultSort)
	if !ok {
		return
	}
	term := c.DefaultQuery("term", h.resultService.DefaultTerm())
	derive := c.Query("derive") == "true"

	records, err := h.resultService.List(c.Request.Context(), identity.StudentID, term, st, derive)
	if err != nil {
		failResultError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"results": records,
		"term":    term,
		"sort":    st,
	})
}

// GetSummary godoc
// GET /api/v1/student/results/summary?term=&exam=
// Returns the derived statistics (passed, average, highest) of the
// result set for the chosen score column.
func (h *ResultsHandler) GetSummary(c *gin.Context) {
	identity, ok := h.currentStudent(c)
	if !ok {
		return
	}

	term := c.DefaultQuery("term", h.resultService.DefaultTerm())
	exam := model.ExamType(c.DefaultQuery("exam", string(model.ExamSemester)))

	records, err := h.resultService.List(c.Request.Context(), identity.StudentID, term, service.DefaultResultSort, false)
	if err != nil {
		failResultError(c, err)
		return
	}

	summary, err := h.resultService.Summarize(records, exam)
	if err != nil {
		failResultError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"exam":    exam,
		"term":    term,
		"summary": summary,
	})
}

// GetPerformance godoc
// GET /api/v1/student/performance?term=
// Returns the pie chart slices: per-subject semester score as a
// percentage of the maximum.
func (h *ResultsHandler) GetPerformance(c *gin.Context) {
	identity, ok := h.currentStudent(c)
	if !ok {
		return
	}

	term := c.DefaultQuery("term", h.resultService.DefaultTerm())

	records, err := h.resultService.List(c.Request.Context(), identity.StudentID, term, service.DefaultResultSort, false)
	if err != nil {
		failResultError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"performance": h.resultService.Performance(records),
	})
}

// GetTerms godoc
// GET /api/v1/student/terms
// Returns the semester selector options.
func (h *ResultsHandler) GetTerms(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"terms": h.resultService.Terms(c.Request.Context()),
	})
}

// currentStudent resolves the session identity behind the validated
// token. CheckActiveSession already guarantees the slot matches the
// token, so a miss here is a race with logout.
func (h *ResultsHandler) currentStudent(c *gin.Context) (*model.Identity, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}

	identity, err := h.sessions.Load(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}
	if identity == nil || identity.ID != claims.Subject {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
		return nil, false
	}
	return identity, true
}

func failResultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUnknownTerm):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTerm)
	case errors.Is(err, service.ErrUnknownSortField):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownSortField)
	case errors.Is(err, service.ErrUnknownExamType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownExamType)
	case errors.Is(err, service.ErrEmptyResultSet):
		response.Fail(c, http.StatusNotFound, response.ErrEmptyResultSet)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing to write.
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// sortStateFromQuery reads the sort query params, falling back to the
// view's default state when a param is absent. An explicit direction
// value that is not asc or desc is rejected with a 400; absence of a
// param is the only thing that falls back.
func sortStateFromQuery(c *gin.Context, def sorting.State) (sorting.State, bool) {
	st := sorting.State{
		Field:     c.DefaultQuery("sort", def.Field),
		Direction: sorting.Direction(c.DefaultQuery("direction", string(def.Direction))),
	}
	if !st.Direction.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownSortField)
		return sorting.State{}, false
	}
	return st, true
}
