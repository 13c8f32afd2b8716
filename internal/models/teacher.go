package models

import "time"

// TeacherStatus is the lowercase status vocabulary stored for teachers.
type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusInactive TeacherStatus = "inactive"
)

// TeacherStatuses lists every known teacher status.
func TeacherStatuses() []TeacherStatus {
	return []TeacherStatus{TeacherStatusActive, TeacherStatusInactive}
}

// Valid reports whether s is a known teacher status. Matching is exact.
func (s TeacherStatus) Valid() bool {
	for _, known := range TeacherStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Teacher represents an instructor record.
type Teacher struct {
	ID        int64         `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Email     *string       `db:"email" json:"email,omitempty"`
	Phone     *string       `db:"phone" json:"phone,omitempty"`
	Education *string       `db:"education" json:"education,omitempty"`
	Gender    *string       `db:"gender" json:"gender,omitempty"`
	Status    TeacherStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// TeacherSearch captures a capped teacher search.
type TeacherSearch struct {
	Query  string
	Status TeacherStatus
}
