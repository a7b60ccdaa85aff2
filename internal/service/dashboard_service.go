package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
)

// PortalState is the dashboard composition state machine:
// Loading → {Unauthenticated, StudentView, TeacherView}, with logout
// returning to Unauthenticated. There is no terminal state.
type PortalState string

const (
	StateLoading         PortalState = "loading"
	StateUnauthenticated PortalState = "unauthenticated"
	StateStudentView     PortalState = "student_view"
	StateTeacherView     PortalState = "teacher_view"
)

// StateFor maps a loaded session onto the composition state. The Loading
// state exists only while the session read is in flight, so a resolved
// identity (or its absence) always lands in one of the other three.
func StateFor(identity *model.Identity) PortalState {
	switch {
	case identity == nil:
		return StateUnauthenticated
	case identity.Role == model.RoleTeacher:
		return StateTeacherView
	default:
		return StateStudentView
	}
}

// StatCard is one summary tile at the top of a dashboard.
type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// StudentView is the composed student dashboard payload.
type StudentView struct {
	Cards       []StatCard               `json:"cards"`
	Results     []model.ResultRecord     `json:"results"`
	Summary     model.ResultSummary      `json:"summary"`
	Performance []model.PerformancePoint `json:"performance"`
	Projects    []model.Project          `json:"projects"`
	Internships []model.Internship       `json:"internships"`
}

// TeacherView is the composed teacher dashboard payload.
type TeacherView struct {
	Cards    []StatCard            `json:"cards"`
	Students []model.StudentRecord `json:"students"`
	Courses  []model.CourseStat    `json:"courses"`
}

// DashboardView is the role-branched dashboard response.
type DashboardView struct {
	State   PortalState     `json:"state"`
	User    *model.Identity `json:"user,omitempty"`
	Student *StudentView    `json:"student,omitempty"`
	Teacher *TeacherView    `json:"teacher,omitempty"`
}

// DashboardService assembles the session store, results, roster and
// profile data into role-specific views. It is the single owner of the
// session slot: nothing else writes through the store.
type DashboardService struct {
	sessions    *SessionStore
	results     *ResultService
	roster      *RosterService
	profileRepo *repository.ProfileRepository
	log         zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	sessions *SessionStore,
	results *ResultService,
	roster *RosterService,
	profileRepo *repository.ProfileRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		sessions:    sessions,
		results:     results,
		roster:      roster,
		profileRepo: profileRepo,
		log:         log.With().Str("component", "dashboard_service").Logger(),
	}
}

// Sessions exposes the session store to the auth boundary. Login and
// logout flow through the composition layer's store, keeping it the
// single writer.
func (s *DashboardService) Sessions() *SessionStore {
	return s.sessions
}

// Resolve loads the session and composes the matching view. No session
// yields the Unauthenticated view; a student or teacher identity yields
// their dashboard with fresh default sort state.
func (s *DashboardService) Resolve(ctx context.Context) (*DashboardView, error) {
	identity, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	switch StateFor(identity) {
	case StateStudentView:
		view, err := s.composeStudent(ctx, identity)
		if err != nil {
			return nil, err
		}
		return &DashboardView{State: StateStudentView, User: identity, Student: view}, nil
	case StateTeacherView:
		view, err := s.composeTeacher(ctx, identity)
		if err != nil {
			return nil, err
		}
		return &DashboardView{State: StateTeacherView, User: identity, Teacher: view}, nil
	default:
		return &DashboardView{State: StateUnauthenticated}, nil
	}
}

func (s *DashboardService) composeStudent(ctx context.Context, identity *model.Identity) (*StudentView, error) {
	records, err := s.results.List(ctx, identity.StudentID, s.results.DefaultTerm(), DefaultResultSort, false)
	if err != nil {
		return nil, err
	}

	summary, err := s.results.Summarize(records, model.ExamSemester)
	if err != nil {
		return nil, err
	}

	profile := s.profileRepo.Profile(ctx, identity.StudentID)

	return &StudentView{
		Cards: []StatCard{
			{Title: "Courses", Value: strconv.Itoa(profile.Courses)},
			{Title: "Attendance", Value: fmt.Sprintf("%d%%", profile.Attendance)},
			{Title: "GPA", Value: strconv.FormatFloat(profile.GPA, 'f', -1, 64)},
			{Title: "Projects", Value: strconv.Itoa(profile.Projects)},
		},
		Results:     records,
		Summary:     summary,
		Performance: s.results.Performance(records),
		Projects:    s.profileRepo.Projects(ctx, identity.StudentID),
		Internships: s.profileRepo.Internships(ctx, identity.StudentID),
	}, nil
}

func (s *DashboardService) composeTeacher(ctx context.Context, identity *model.Identity) (*TeacherView, error) {
	students, err := s.roster.List(ctx, RosterFilter{}, DefaultRosterSort)
	if err != nil {
		return nil, err
	}
	courses := s.roster.CourseStats(ctx)

	return &TeacherView{
		Cards: []StatCard{
			{Title: "Total Students", Value: strconv.Itoa(len(students))},
			{Title: "Courses", Value: strconv.Itoa(len(courses))},
			{Title: "Department", Value: identity.Department},
		},
		Students: students,
		Courses:  courses,
	}, nil
}
