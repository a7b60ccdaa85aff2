package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/svuportal/portal-backend/internal/model"
)

// ErrUnknownTerm is returned when a semester term is not in the selector.
var ErrUnknownTerm = errors.New("unknown semester term")

// ResultRepository serves the mock academic result sets. Each student has
// one set of subject results; the semester selector exposes historical
// terms but the demo dataset is the same for every term.
type ResultRepository struct {
	results map[string][]model.ResultRecord
	terms   []model.Term
}

// NewResultRepository creates the repository with the demo result sets.
func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		results: map[string][]model.ResultRecord{
			"SVU2023001": demoResults(),
		},
		terms: []model.Term{
			{Value: "current", Label: "Current Semester (2023-2024)"},
			{Value: "previous", Label: "Previous Semester (2022-2023)"},
			{Value: "first-year", Label: "First Year (2021-2022)"},
		},
	}
}

// ListByStudent returns a copy of the student's result set for a term.
// An unknown student has an empty result set, not an error; an unknown
// term is rejected.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID, term string) ([]model.ResultRecord, error) {
	if !slices.ContainsFunc(r.terms, func(t model.Term) bool { return t.Value == term }) {
		return nil, ErrUnknownTerm
	}
	return slices.Clone(r.results[studentID]), nil
}

// Terms returns the semester selector options.
func (r *ResultRepository) Terms(ctx context.Context) []model.Term {
	return slices.Clone(r.terms)
}

// DefaultTerm is the term served when the client does not pick one.
func (r *ResultRepository) DefaultTerm() string {
	return r.terms[0].Value
}

func demoResults() []model.ResultRecord {
	return []model.ResultRecord{
		{Subject: "Mathematics", Mid1: 42, Mid2: 45, Semester: 86, Grade: "A+", Status: model.StatusPass},
		{Subject: "Computer Science", Mid1: 46, Mid2: 48, Semester: 92, Grade: "O", Status: model.StatusPass},
		{Subject: "Physics", Mid1: 38, Mid2: 41, Semester: 78, Grade: "A", Status: model.StatusPass},
		{Subject: "English", Mid1: 44, Mid2: 43, Semester: 88, Grade: "A+", Status: model.StatusPass},
		{Subject: "Chemistry", Mid1: 36, Mid2: 39, Semester: 75, Grade: "B+", Status: model.StatusPass},
	}
}
