package repository

import (
	"context"
	"slices"

	"github.com/svuportal/portal-backend/internal/model"
)

// ProfileRepository serves the stat-card figures, projects and
// internships of the student dashboard. These are standalone mock
// figures, not aggregates of the result set.
type ProfileRepository struct {
	profiles    map[string]model.StudentProfile
	projects    map[string][]model.Project
	internships map[string][]model.Internship
}

// NewProfileRepository creates the repository with the demo profile data.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: map[string]model.StudentProfile{
			"SVU2023001": {Courses: 5, Attendance: 92, GPA: 8.6, Projects: 2},
		},
		projects: map[string][]model.Project{
			"SVU2023001": {
				{
					ID:          1,
					Title:       "Machine Learning for Predictive Analysis",
					Description: "A project on using machine learning algorithms for predictive analysis of student performance.",
					Status:      "Completed",
					Grade:       "A",
					Date:        "2023-05-15",
				},
				{
					ID:          2,
					Title:       "Web-based Student Management System",
					Description: "Development of a web-based student management system for academic tracking.",
					Status:      "In Progress",
					Grade:       "Pending",
					Date:        "2023-10-10",
				},
			},
		},
		internships: map[string][]model.Internship{
			"SVU2023001": {
				{
					ID:      1,
					Company: "Tech Innovations Inc.",
					Role:    "Web Development Intern",
					Period:  "May 2023 - July 2023",
					Status:  "Completed",
					Skills:  []string{"React", "Node.js", "MongoDB"},
				},
				{
					ID:      2,
					Company: "DataSoft Solutions",
					Role:    "Data Science Intern",
					Period:  "Dec 2023 - Feb 2024",
					Status:  "In Progress",
					Skills:  []string{"Python", "TensorFlow", "Data Analysis"},
				},
			},
		},
	}
}

// Profile returns the stat-card figures for a student, zero-valued if unknown.
func (r *ProfileRepository) Profile(ctx context.Context, studentID string) model.StudentProfile {
	return r.profiles[studentID]
}

// Projects returns a copy of the student's project list.
func (r *ProfileRepository) Projects(ctx context.Context, studentID string) []model.Project {
	return slices.Clone(r.projects[studentID])
}

// Internships returns a copy of the student's internship list.
func (r *ProfileRepository) Internships(ctx context.Context, studentID string) []model.Internship {
	return slices.Clone(r.internships[studentID])
}
