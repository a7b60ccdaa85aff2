package model

import "fmt"

// ResultStatus is the pass/fail state of one subject result.
type ResultStatus string

const (
	StatusPass    ResultStatus = "pass"
	StatusFail    ResultStatus = "fail"
	StatusPending ResultStatus = "pending"
)

// ExamType selects which score column of a result record is in play.
type ExamType string

const (
	ExamMid1     ExamType = "mid1"
	ExamMid2     ExamType = "mid2"
	ExamSemester ExamType = "semester"
)

// Valid reports whether the exam type is one of the three score columns.
func (e ExamType) Valid() bool {
	return e == ExamMid1 || e == ExamMid2 || e == ExamSemester
}

// ResultRecord is one subject's scores, grade and status for a student.
// Subject is unique within a result set. Grade and Status are stored
// values: they may be derived from the semester score or manually
// overridden by a teacher, so the record keeps them independent.
type ResultRecord struct {
	Subject  string       `json:"subject"`
	Mid1     int          `json:"mid1"`
	Mid2     int          `json:"mid2"`
	Semester int          `json:"semester"`
	Grade    string       `json:"grade"`
	Status   ResultStatus `json:"status"`
}

// Score returns the record's score for the given exam type.
func (r ResultRecord) Score(exam ExamType) int {
	switch exam {
	case ExamMid1:
		return r.Mid1
	case ExamMid2:
		return r.Mid2
	default:
		return r.Semester
	}
}

// Validate checks the 0-100 bounds on every score column.
func (r ResultRecord) Validate() error {
	for _, sc := range []struct {
		name  string
		value int
	}{
		{"mid1", r.Mid1},
		{"mid2", r.Mid2},
		{"semester", r.Semester},
	} {
		if sc.value < 0 || sc.value > 100 {
			return fmt.Errorf("%s: score %d out of range [0,100] for subject %q", sc.name, sc.value, r.Subject)
		}
	}
	return nil
}

// ResultSummary carries the derived statistics for a result set and a
// chosen score column. Empty sets are represented as explicit zeros.
type ResultSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Average int `json:"average"`
	Highest int `json:"highest"`
}

// PerformancePoint is one slice of the performance pie chart:
// a subject's score expressed as a percentage of the maximum.
type PerformancePoint struct {
	Subject  string  `json:"subject"`
	Score    int     `json:"score"`
	MaxScore int     `json:"max_score"`
	Percent  float64 `json:"percent"`
}

// Term is one entry of the semester selector.
type Term struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
