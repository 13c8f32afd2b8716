package dto

import (
	"time"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// TeachersActive is the payload of the active teacher count.
type TeachersActive struct {
	TotalTeachersActive int `json:"total_teachers_active"`
}

// TeacherStats breaks every teacher down by status.
type TeacherStats struct {
	StatsByStatus map[string]int    `json:"stats_by_status"`
	TotalAll      int               `json:"total_all"`
	Detail        []models.CountRow `json:"detail"`
}

// TeacherList is one page of active teachers.
type TeacherList struct {
	Teachers   []models.Teacher  `json:"teachers"`
	Pagination models.Pagination `json:"pagination"`
}

// TeacherSearchResult is a capped teacher search.
type TeacherSearchResult struct {
	Teachers   []models.Teacher `json:"teachers"`
	TotalFound int              `json:"total_found"`
	Query      string           `json:"query"`
}

// TeachersByMonth is the dense monthly series of new active teachers.
type TeachersByMonth struct {
	Year   int                 `json:"year"`
	Months []models.MonthCount `json:"months"`
	Total  int                 `json:"total"`
}

// TeacherDetail wraps a single teacher.
type TeacherDetail struct {
	Teacher models.Teacher `json:"teacher"`
}

// StudentsActive is the payload of the active student count.
type StudentsActive struct {
	TotalStudentsActive int `json:"total_students_active"`
}

// StudentStats combines the status, class and gender breakdowns.
type StudentStats struct {
	TotalAll      int            `json:"total_all"`
	StatsByStatus map[string]int `json:"stats_by_status"`
	StatsByClass  map[string]int `json:"stats_by_class"`
	StatsByGender map[string]int `json:"stats_by_gender"`
}

// StudentListFilter echoes the filter applied to a student listing.
type StudentListFilter struct {
	Status models.StudentStatus `json:"status"`
	Class  string               `json:"class,omitempty"`
}

// StudentList is one page of students.
type StudentList struct {
	Students   []models.StudentSummary `json:"students"`
	Pagination models.Pagination       `json:"pagination"`
	Filter     StudentListFilter       `json:"filter"`
}

// StudentSearchResult is a capped student search.
type StudentSearchResult struct {
	Students   []models.StudentSummary `json:"students"`
	TotalFound int                     `json:"total_found"`
	Query      string                  `json:"query"`
}

// StudentDetail wraps a single student.
type StudentDetail struct {
	Student models.Student `json:"student"`
}

// StudentsByYear is the enrollment-year cross tabulation.
type StudentsByYear struct {
	StatsByYear []models.EnrollmentYearStats `json:"stats_by_year"`
}

// EntitySummary is a status breakdown with its total.
type EntitySummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Summary is the combined dashboard overview.
type Summary struct {
	Teachers EntitySummary `json:"teachers"`
	Students EntitySummary `json:"students"`
}

// Health reports database connectivity.
type Health struct {
	DatabaseStatus string     `json:"database_status"`
	DatabaseTime   *time.Time `json:"database_time,omitempty"`
	Version        string     `json:"version"`
	Environment    string     `json:"environment"`
}

// Database connectivity states reported by Health.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)
