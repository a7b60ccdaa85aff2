package repository

import (
	"context"
	"slices"

	"github.com/svuportal/portal-backend/internal/model"
)

// RosterRepository serves the teacher-facing student roster and the
// per-course aggregates. Read-only: the portal has no enrollment
// management.
type RosterRepository struct {
	students []model.StudentRecord
	courses  []model.CourseStat
}

// NewRosterRepository creates the repository with the demo roster.
func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		students: demoRoster(),
		courses: []model.CourseStat{
			{Name: "Data Structures", Students: 45, AvgScore: 82},
			{Name: "Database Systems", Students: 38, AvgScore: 78},
			{Name: "Web Development", Students: 42, AvgScore: 85},
		},
	}
}

// List returns a copy of the full roster.
func (r *RosterRepository) List(ctx context.Context) []model.StudentRecord {
	return slices.Clone(r.students)
}

// CourseStats returns a copy of the per-course aggregates.
func (r *RosterRepository) CourseStats(ctx context.Context) []model.CourseStat {
	return slices.Clone(r.courses)
}

func demoRoster() []model.StudentRecord {
	return []model.StudentRecord{
		{
			ID: "1", StudentID: "SVU2023001", Name: "John Student",
			Email: "john.student@svu.ac.in", Department: "Computer Science", Year: 3,
			Photo:       "https://i.pravatar.cc/150?img=11",
			Performance: &model.Performance{Attendance: 92, AverageGrade: "A", AverageScore: 86},
		},
		{
			ID: "2", StudentID: "SVU2023002", Name: "Alice Johnson",
			Email: "alice.johnson@svu.ac.in", Department: "Computer Science", Year: 3,
			Photo:       "https://i.pravatar.cc/150?img=5",
			Performance: &model.Performance{Attendance: 88, AverageGrade: "A-", AverageScore: 82},
		},
		{
			ID: "3", StudentID: "SVU2023003", Name: "Robert Chen",
			Email: "robert.chen@svu.ac.in", Department: "Computer Science", Year: 3,
			Photo:       "https://i.pravatar.cc/150?img=12",
			Performance: &model.Performance{Attendance: 95, AverageGrade: "A+", AverageScore: 91},
		},
		{
			ID: "4", StudentID: "SVU2023004", Name: "Emma Wilson",
			Email: "emma.wilson@svu.ac.in", Department: "Computer Science", Year: 3,
			Photo:       "https://i.pravatar.cc/150?img=9",
			Performance: &model.Performance{Attendance: 79, AverageGrade: "B+", AverageScore: 76},
		},
		{
			ID: "5", StudentID: "SVU2023005", Name: "Michael Smith",
			Email: "michael.smith@svu.ac.in", Department: "Computer Science", Year: 3,
			Photo:       "https://i.pravatar.cc/150?img=15",
			Performance: &model.Performance{Attendance: 85, AverageGrade: "A-", AverageScore: 84},
		},
		{
			ID: "6", StudentID: "SVU2023006", Name: "Sophia Patel",
			Email: "sophia.patel@svu.ac.in", Department: "Computer Science", Year: 3,
			Photo:       "https://i.pravatar.cc/150?img=24",
			Performance: &model.Performance{Attendance: 91, AverageGrade: "A", AverageScore: 88},
		},
	}
}
