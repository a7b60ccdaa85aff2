package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/sorting"
)

// DefaultRosterSort is the sort state a freshly mounted roster view gets.
var DefaultRosterSort = sorting.NewState("name")

// RosterFilter narrows the teacher roster. Zero values mean "no filter":
// an empty query matches everything, empty department/year disable the
// exact-match constraints.
type RosterFilter struct {
	Query      string
	Department string
	Year       string
}

// RosterService serves the teacher-facing roster and course aggregates.
type RosterService struct {
	rosterRepo *repository.RosterRepository
	log        zerolog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(rosterRepo *repository.RosterRepository, log zerolog.Logger) *RosterService {
	return &RosterService{
		rosterRepo: rosterRepo,
		log:        log.With().Str("component", "roster_service").Logger(),
	}
}

// List returns the roster narrowed by the filter and ordered by the sort
// state. Filtering always composes before sorting.
func (s *RosterService) List(ctx context.Context, f RosterFilter, st sorting.State) ([]model.StudentRecord, error) {
	students := FilterRoster(s.rosterRepo.List(ctx), f)
	return SortRoster(students, st)
}

// CourseStats returns the per-course aggregates.
func (s *RosterService) CourseStats(ctx context.Context) []model.CourseStat {
	return s.rosterRepo.CourseStats(ctx)
}

// FilterRoster keeps a student when all of: the query is a
// case-insensitive substring of the name, student ID or email; the
// department matches exactly or no department is selected; the year
// matches exactly or no year is selected.
func FilterRoster(students []model.StudentRecord, f RosterFilter) []model.StudentRecord {
	query := strings.ToLower(f.Query)
	out := make([]model.StudentRecord, 0, len(students))
	for _, st := range students {
		matchesQuery := query == "" ||
			strings.Contains(strings.ToLower(st.Name), query) ||
			strings.Contains(strings.ToLower(st.StudentID), query) ||
			strings.Contains(strings.ToLower(st.Email), query)
		matchesDepartment := f.Department == "" || st.Department == f.Department
		matchesYear := f.Year == "" || strconv.Itoa(st.Year) == f.Year

		if matchesQuery && matchesDepartment && matchesYear {
			out = append(out, st)
		}
	}
	return out
}

// SortRoster orders the roster by the sort state without mutating the
// input slice.
func SortRoster(students []model.StudentRecord, st sorting.State) ([]model.StudentRecord, error) {
	if !st.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", ErrUnknownSortField, st.Direction)
	}
	key, err := rosterKey(st.Field)
	if err != nil {
		return nil, err
	}
	return sorting.By(students, st.Direction, key), nil
}

func rosterKey(field string) (func(model.StudentRecord) sorting.Key, error) {
	switch field {
	case "name":
		return func(s model.StudentRecord) sorting.Key { return sorting.Text(s.Name) }, nil
	case "student_id":
		return func(s model.StudentRecord) sorting.Key { return sorting.Text(s.StudentID) }, nil
	case "email":
		return func(s model.StudentRecord) sorting.Key { return sorting.Text(s.Email) }, nil
	case "department":
		return func(s model.StudentRecord) sorting.Key { return sorting.Text(s.Department) }, nil
	case "year":
		return func(s model.StudentRecord) sorting.Key { return sorting.Number(float64(s.Year)) }, nil
	case "average_score":
		return func(s model.StudentRecord) sorting.Key {
			if s.Performance == nil {
				return sorting.Number(0)
			}
			return sorting.Number(float64(s.Performance.AverageScore))
		}, nil
	case "attendance":
		return func(s model.StudentRecord) sorting.Key {
			if s.Performance == nil {
				return sorting.Number(0)
			}
			return sorting.Number(float64(s.Performance.Attendance))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
}
