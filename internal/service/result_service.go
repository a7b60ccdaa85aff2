package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/sorting"
)

// Result domain errors.
var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownExamType  = errors.New("unknown exam type")
	ErrEmptyResultSet   = errors.New("result set is empty")
)

// DefaultResultSort is the sort state a freshly mounted results view gets.
var DefaultResultSort = sorting.NewState("subject")

// ResultService serves a student's academic results: ordering, derived
// statistics, grade derivation and the performance chart data.
type ResultService struct {
	resultRepo *repository.ResultRepository
	log        zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo *repository.ResultRepository, log zerolog.Logger) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		log:        log.With().Str("component", "result_service").Logger(),
	}
}

// List returns the student's result set for a term, ordered by the sort
// state. With derive set, grade and status are recomputed from the
// semester score instead of the stored (possibly overridden) values.
func (s *ResultService) List(ctx context.Context, studentID, term string, st sorting.State, derive bool) ([]model.ResultRecord, error) {
	records, err := s.resultRepo.ListByStudent(ctx, studentID, term)
	if err != nil {
		return nil, err
	}
	if derive {
		if records, err = WithDerivedGrades(records); err != nil {
			return nil, err
		}
	}
	return SortResults(records, st)
}

// Terms returns the semester selector options.
func (s *ResultService) Terms(ctx context.Context) []model.Term {
	return s.resultRepo.Terms(ctx)
}

// DefaultTerm returns the term used when the client does not pick one.
func (s *ResultService) DefaultTerm() string {
	return s.resultRepo.DefaultTerm()
}

// Summarize computes the stat-card summary for a result set. An empty
// set yields explicit zeros rather than an error; the granular
// AverageScore/HighestScore functions are the strict variants.
func (s *ResultService) Summarize(records []model.ResultRecord, exam model.ExamType) (model.ResultSummary, error) {
	if !exam.Valid() {
		return model.ResultSummary{}, ErrUnknownExamType
	}
	summary := model.ResultSummary{
		Total:  len(records),
		Passed: PassedCount(records),
	}
	if len(records) == 0 {
		return summary, nil
	}
	avg, err := AverageScore(records, exam)
	if err != nil {
		return model.ResultSummary{}, err
	}
	high, err := HighestScore(records, exam)
	if err != nil {
		return model.ResultSummary{}, err
	}
	summary.Average = avg
	summary.Highest = high
	return summary, nil
}

// Performance maps a result set onto pie chart slices: each subject's
// semester score as a percentage of the maximum.
func (s *ResultService) Performance(records []model.ResultRecord) []model.PerformancePoint {
	const maxScore = 100
	points := make([]model.PerformancePoint, 0, len(records))
	for _, r := range records {
		points = append(points, model.PerformancePoint{
			Subject:  r.Subject,
			Score:    r.Semester,
			MaxScore: maxScore,
			Percent:  float64(r.Semester) / maxScore * 100,
		})
	}
	return points
}

// SortResults orders a result set by the sort state without mutating the
// input. Textual columns use locale-aware collation, score columns
// compare numerically.
func SortResults(records []model.ResultRecord, st sorting.State) ([]model.ResultRecord, error) {
	if !st.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", ErrUnknownSortField, st.Direction)
	}
	key, err := resultKey(st.Field)
	if err != nil {
		return nil, err
	}
	return sorting.By(records, st.Direction, key), nil
}

func resultKey(field string) (func(model.ResultRecord) sorting.Key, error) {
	switch field {
	case "subject":
		return func(r model.ResultRecord) sorting.Key { return sorting.Text(r.Subject) }, nil
	case "mid1":
		return func(r model.ResultRecord) sorting.Key { return sorting.Number(float64(r.Mid1)) }, nil
	case "mid2":
		return func(r model.ResultRecord) sorting.Key { return sorting.Number(float64(r.Mid2)) }, nil
	case "semester":
		return func(r model.ResultRecord) sorting.Key { return sorting.Number(float64(r.Semester)) }, nil
	case "grade":
		return func(r model.ResultRecord) sorting.Key { return sorting.Text(r.Grade) }, nil
	case "status":
		return func(r model.ResultRecord) sorting.Key { return sorting.Text(string(r.Status)) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
}

// ─── Derived statistics (pure) ──────────────────────────────────────

// PassedCount counts records with pass status.
func PassedCount(records []model.ResultRecord) int {
	n := 0
	for _, r := range records {
		if r.Status == model.StatusPass {
			n++
		}
	}
	return n
}

// AverageScore returns the selected field's mean over all records,
// rounded to the nearest integer. An empty set is an explicit
// ErrEmptyResultSet, never a NaN-like value.
func AverageScore(records []model.ResultRecord, exam model.ExamType) (int, error) {
	if !exam.Valid() {
		return 0, ErrUnknownExamType
	}
	if len(records) == 0 {
		return 0, ErrEmptyResultSet
	}
	sum := 0
	for _, r := range records {
		sum += r.Score(exam)
	}
	return int(math.Round(float64(sum) / float64(len(records)))), nil
}

// HighestScore returns the maximum of the selected field over all records.
func HighestScore(records []model.ResultRecord, exam model.ExamType) (int, error) {
	if !exam.Valid() {
		return 0, ErrUnknownExamType
	}
	if len(records) == 0 {
		return 0, ErrEmptyResultSet
	}
	high := records[0].Score(exam)
	for _, r := range records[1:] {
		if sc := r.Score(exam); sc > high {
			high = sc
		}
	}
	return high, nil
}

// ─── Grade derivation ───────────────────────────────────────────────

// DeriveGrade maps a 0-100 score onto the documented grade scale:
// O 90-100, A+ 80-89, A 70-79, B+ 60-69, B 50-59, C 40-49, F below 40.
func DeriveGrade(score int) string {
	switch {
	case score >= 90:
		return "O"
	case score >= 80:
		return "A+"
	case score >= 70:
		return "A"
	case score >= 60:
		return "B+"
	case score >= 50:
		return "B"
	case score >= 40:
		return "C"
	default:
		return "F"
	}
}

// DeriveStatus maps a score onto pass/fail along the grade scale's
// failing boundary. Pending is an override-only state and is never
// derived.
func DeriveStatus(score int) model.ResultStatus {
	if score >= 40 {
		return model.StatusPass
	}
	return model.StatusFail
}

// WithDerivedGrades returns a copy of the result set with grade and
// status recomputed from the semester score. Stored values stay the
// authoritative default; this is the opt-in derivation path. Scores are
// bounds-checked before deriving.
func WithDerivedGrades(records []model.ResultRecord) ([]model.ResultRecord, error) {
	out := make([]model.ResultRecord, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		r.Grade = DeriveGrade(r.Semester)
		r.Status = DeriveStatus(r.Semester)
		out[i] = r
	}
	return out, nil
}
