package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/sorting"
)

func demoRecords() []model.ResultRecord {
	return []model.ResultRecord{
		{Subject: "Mathematics", Mid1: 42, Mid2: 45, Semester: 86, Grade: "A+", Status: model.StatusPass},
		{Subject: "Computer Science", Mid1: 46, Mid2: 48, Semester: 92, Grade: "O", Status: model.StatusPass},
		{Subject: "Physics", Mid1: 38, Mid2: 41, Semester: 78, Grade: "A", Status: model.StatusPass},
		{Subject: "English", Mid1: 44, Mid2: 43, Semester: 88, Grade: "A+", Status: model.StatusPass},
		{Subject: "Chemistry", Mid1: 36, Mid2: 39, Semester: 75, Grade: "B+", Status: model.StatusPass},
	}
}

func TestPassedCount(t *testing.T) {
	records := demoRecords()
	if got := PassedCount(records); got != 5 {
		t.Errorf("PassedCount() = %d, want 5", got)
	}

	records[1].Status = model.StatusFail
	records[3].Status = model.StatusPending
	if got := PassedCount(records); got != 3 {
		t.Errorf("PassedCount() with fail and pending = %d, want 3", got)
	}

	if got := PassedCount(nil); got != 0 {
		t.Errorf("PassedCount(nil) = %d, want 0", got)
	}
}

func TestAverageScore(t *testing.T) {
	// (86+92+78+88+75)/5 = 83.8, rounded to the nearest integer.
	got, err := AverageScore(demoRecords(), model.ExamSemester)
	if err != nil {
		t.Fatalf("AverageScore() error = %v", err)
	}
	if got != 84 {
		t.Errorf("AverageScore(semester) = %d, want 84", got)
	}

	// (42+46+38+44+36)/5 = 41.2 rounds down.
	got, err = AverageScore(demoRecords(), model.ExamMid1)
	if err != nil {
		t.Fatalf("AverageScore() error = %v", err)
	}
	if got != 41 {
		t.Errorf("AverageScore(mid1) = %d, want 41", got)
	}

	if _, err := AverageScore(nil, model.ExamSemester); !errors.Is(err, ErrEmptyResultSet) {
		t.Errorf("AverageScore(empty) error = %v, want ErrEmptyResultSet", err)
	}
	if _, err := AverageScore(demoRecords(), model.ExamType("final")); !errors.Is(err, ErrUnknownExamType) {
		t.Errorf("AverageScore(unknown exam) error = %v, want ErrUnknownExamType", err)
	}
}

func TestHighestScore(t *testing.T) {
	got, err := HighestScore(demoRecords(), model.ExamSemester)
	if err != nil {
		t.Fatalf("HighestScore() error = %v", err)
	}
	if got != 92 {
		t.Errorf("HighestScore(semester) = %d, want 92", got)
	}

	if _, err := HighestScore([]model.ResultRecord{}, model.ExamSemester); !errors.Is(err, ErrEmptyResultSet) {
		t.Errorf("HighestScore(empty) error = %v, want ErrEmptyResultSet", err)
	}
}

func TestSummarize(t *testing.T) {
	svc := NewResultService(repository.NewResultRepository(), zerolog.Nop())

	summary, err := svc.Summarize(demoRecords(), model.ExamSemester)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	want := model.ResultSummary{Total: 5, Passed: 5, Average: 84, Highest: 92}
	if summary != want {
		t.Errorf("Summarize() = %+v, want %+v", summary, want)
	}

	// An empty set is explicit zeros, never an error at this level.
	summary, err = svc.Summarize(nil, model.ExamSemester)
	if err != nil {
		t.Fatalf("Summarize(empty) error = %v", err)
	}
	if summary != (model.ResultSummary{}) {
		t.Errorf("Summarize(empty) = %+v, want all zeros", summary)
	}

	if _, err := svc.Summarize(demoRecords(), model.ExamType("final")); !errors.Is(err, ErrUnknownExamType) {
		t.Errorf("Summarize(unknown exam) error = %v, want ErrUnknownExamType", err)
	}
}

func TestDeriveGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "O"},
		{90, "O"},
		{89, "A+"},
		{80, "A+"},
		{79, "A"},
		{70, "A"},
		{69, "B+"},
		{60, "B+"},
		{59, "B"},
		{50, "B"},
		{49, "C"},
		{40, "C"},
		{39, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got := DeriveGrade(tt.score); got != tt.want {
			t.Errorf("DeriveGrade(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	if got := DeriveStatus(40); got != model.StatusPass {
		t.Errorf("DeriveStatus(40) = %q, want pass", got)
	}
	if got := DeriveStatus(39); got != model.StatusFail {
		t.Errorf("DeriveStatus(39) = %q, want fail", got)
	}
}

func TestWithDerivedGrades(t *testing.T) {
	in := []model.ResultRecord{
		{Subject: "Physics", Semester: 78, Grade: "C", Status: model.StatusFail}, // overridden stored values
		{Subject: "Labs", Semester: 35, Grade: "B", Status: model.StatusPending},
	}

	out, err := WithDerivedGrades(in)
	if err != nil {
		t.Fatalf("WithDerivedGrades() error = %v", err)
	}

	if out[0].Grade != "A" || out[0].Status != model.StatusPass {
		t.Errorf("derived[0] = %q/%q, want A/pass", out[0].Grade, out[0].Status)
	}
	if out[1].Grade != "F" || out[1].Status != model.StatusFail {
		t.Errorf("derived[1] = %q/%q, want F/fail", out[1].Grade, out[1].Status)
	}

	// The stored records keep their override values.
	if in[0].Grade != "C" || in[1].Status != model.StatusPending {
		t.Errorf("input mutated: %+v", in)
	}

	if _, err := WithDerivedGrades([]model.ResultRecord{{Subject: "Math", Semester: 104}}); err == nil {
		t.Error("WithDerivedGrades() accepted an out-of-range score")
	}
}

func TestSortResults(t *testing.T) {
	records := demoRecords()

	bySubject, err := SortResults(records, sorting.NewState("subject"))
	if err != nil {
		t.Fatalf("SortResults(subject) error = %v", err)
	}
	wantSubjects := []string{"Chemistry", "Computer Science", "English", "Mathematics", "Physics"}
	for i, w := range wantSubjects {
		if bySubject[i].Subject != w {
			t.Fatalf("subject order[%d] = %q, want %q", i, bySubject[i].Subject, w)
		}
	}

	bySemester, err := SortResults(records, sorting.State{Field: "semester", Direction: sorting.Descending})
	if err != nil {
		t.Fatalf("SortResults(semester desc) error = %v", err)
	}
	if bySemester[0].Subject != "Computer Science" || bySemester[4].Subject != "Chemistry" {
		t.Errorf("semester desc order wrong: %+v", bySemester)
	}

	// Sorting must never touch the caller's slice.
	if !slices.Equal(records, demoRecords()) {
		t.Errorf("input mutated by sort: %+v", records)
	}

	if _, err := SortResults(records, sorting.NewState("teacher_remarks")); !errors.Is(err, ErrUnknownSortField) {
		t.Errorf("SortResults(unknown field) error = %v, want ErrUnknownSortField", err)
	}
	if _, err := SortResults(records, sorting.State{Field: "subject", Direction: "sideways"}); err == nil {
		t.Error("SortResults() accepted an invalid direction")
	}
}

func TestResultServiceList(t *testing.T) {
	svc := NewResultService(repository.NewResultRepository(), zerolog.Nop())
	ctx := context.Background()

	records, err := svc.List(ctx, "SVU2023001", svc.DefaultTerm(), DefaultResultSort, false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("List() returned %d records, want 5", len(records))
	}
	if records[0].Subject != "Chemistry" {
		t.Errorf("List() first subject = %q, want Chemistry (default sort)", records[0].Subject)
	}

	// Unknown students read as empty, unknown terms are rejected.
	records, err = svc.List(ctx, "SVU9999999", svc.DefaultTerm(), DefaultResultSort, false)
	if err != nil {
		t.Fatalf("List(unknown student) error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List(unknown student) returned %d records, want 0", len(records))
	}

	if _, err := svc.List(ctx, "SVU2023001", "summer-1999", DefaultResultSort, false); !errors.Is(err, repository.ErrUnknownTerm) {
		t.Errorf("List(unknown term) error = %v, want ErrUnknownTerm", err)
	}

	// Derivation recomputes grades from the semester score.
	derived, err := svc.List(ctx, "SVU2023001", svc.DefaultTerm(), sorting.State{Field: "semester", Direction: sorting.Descending}, true)
	if err != nil {
		t.Fatalf("List(derive) error = %v", err)
	}
	if derived[0].Grade != "O" {
		t.Errorf("derived top grade = %q, want O", derived[0].Grade)
	}
}

func TestPerformance(t *testing.T) {
	svc := NewResultService(repository.NewResultRepository(), zerolog.Nop())

	points := svc.Performance(demoRecords()[:2])
	if len(points) != 2 {
		t.Fatalf("Performance() returned %d points, want 2", len(points))
	}
	if points[0].Subject != "Mathematics" || points[0].Score != 86 || points[0].Percent != 86 {
		t.Errorf("Performance()[0] = %+v", points[0])
	}

	if got := svc.Performance(nil); len(got) != 0 {
		t.Errorf("Performance(nil) = %+v, want empty", got)
	}
}
