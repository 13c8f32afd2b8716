package models

import "time"

// StudentStatus is the capitalized status vocabulary stored for students.
type StudentStatus string

const (
	StudentStatusActive      StudentStatus = "Active"
	StudentStatusAlumni      StudentStatus = "Alumni"
	StudentStatusTransferred StudentStatus = "Transferred"
	StudentStatusInactive    StudentStatus = "Inactive"
	StudentStatusDroppedOut  StudentStatus = "DroppedOut"
)

// StudentStatuses lists every known student status in display order.
func StudentStatuses() []StudentStatus {
	return []StudentStatus{
		StudentStatusActive,
		StudentStatusAlumni,
		StudentStatusTransferred,
		StudentStatusInactive,
		StudentStatusDroppedOut,
	}
}

// Valid reports whether s is a known student status. Matching is exact, so
// "active" is not a student status.
func (s StudentStatus) Valid() bool {
	for _, known := range StudentStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Gender codes recorded for students.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// StudentGenders lists the gender codes used for dense breakdowns.
func StudentGenders() []string {
	return []string{GenderMale, GenderFemale}
}

// Student is the full student record keyed by NIS.
type Student struct {
	NIS              string        `db:"nis" json:"nis"`
	Name             string        `db:"name" json:"name"`
	Class            *string       `db:"class" json:"class,omitempty"`
	Gender           *string       `db:"gender" json:"gender,omitempty"`
	BirthDate        *time.Time    `db:"birth_date" json:"birth_date,omitempty"`
	BirthPlace       *string       `db:"birth_place" json:"birth_place,omitempty"`
	Address          *string       `db:"address" json:"address,omitempty"`
	ParentName       *string       `db:"parent_name" json:"parent_name,omitempty"`
	ParentOccupation *string       `db:"parent_occupation" json:"parent_occupation,omitempty"`
	Phone            *string       `db:"phone" json:"phone,omitempty"`
	Email            *string       `db:"email" json:"email,omitempty"`
	Religion         *string       `db:"religion" json:"religion,omitempty"`
	Status           StudentStatus `db:"status" json:"status"`
	EnrollmentYear   *int          `db:"enrollment_year" json:"enrollment_year,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// StudentSummary is the projection returned by list and search operations.
type StudentSummary struct {
	NIS            string        `db:"nis" json:"nis"`
	Name           string        `db:"name" json:"name"`
	Class          *string       `db:"class" json:"class,omitempty"`
	Gender         *string       `db:"gender" json:"gender,omitempty"`
	BirthDate      *time.Time    `db:"birth_date" json:"birth_date,omitempty"`
	ParentName     *string       `db:"parent_name" json:"parent_name,omitempty"`
	Phone          *string       `db:"phone" json:"phone,omitempty"`
	Status         StudentStatus `db:"status" json:"status"`
	EnrollmentYear *int          `db:"enrollment_year" json:"enrollment_year,omitempty"`
}

// StudentFilter scopes a paginated student listing.
type StudentFilter struct {
	Status StudentStatus
	Class  string
	Page   PageRequest
}

// StudentSearch captures a capped student search.
type StudentSearch struct {
	Query  string
	Status StudentStatus
}
