package model

// Performance is the per-student summary shown on the teacher roster.
type Performance struct {
	Attendance   int    `json:"attendance"`
	AverageGrade string `json:"average_grade"`
	AverageScore int    `json:"average_score"`
}

// StudentRecord is the teacher-facing view of one enrolled student.
// Read-only in this service; the roster has no create/update/delete.
type StudentRecord struct {
	ID          string       `json:"id"`
	StudentID   string       `json:"student_id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Department  string       `json:"department"`
	Year        int          `json:"year"`
	Photo       string       `json:"photo,omitempty"`
	Performance *Performance `json:"performance,omitempty"`
}

// CourseStat aggregates one taught course for the teacher dashboard.
type CourseStat struct {
	Name     string `json:"name"`
	Students int    `json:"students"`
	AvgScore int    `json:"avg_score"`
}

// StudentProfile carries the extra stat-card figures of the student
// dashboard that are not derivable from the result set.
type StudentProfile struct {
	Courses    int     `json:"courses"`
	Attendance int     `json:"attendance"`
	GPA        float64 `json:"gpa"`
	Projects   int     `json:"projects"`
}

// Project is one student project entry.
type Project struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Grade       string `json:"grade"`
	Date        string `json:"date"`
}

// Internship is one student internship entry.
type Internship struct {
	ID      int      `json:"id"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Period  string   `json:"period"`
	Status  string   `json:"status"`
	Skills  []string `json:"skills"`
}
