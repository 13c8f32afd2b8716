package models

// CountRow is one grouped (category, count) row.
type CountRow struct {
	Key   string `db:"key" json:"key"`
	Count int    `db:"count" json:"count"`
}

// MonthRow is one grouped (month, count) row; Month is 1-based.
type MonthRow struct {
	Month int `db:"month"`
	Count int `db:"count"`
}

// MonthCount is one entry of a dense twelve-month series.
type MonthCount struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Count     int    `json:"count"`
}

// EnrollmentRow is one (year, status, gender) group of students.
type EnrollmentRow struct {
	Year   int    `db:"enrollment_year"`
	Status string `db:"status"`
	Gender string `db:"gender"`
	Count  int    `db:"count"`
}

// EnrollmentYearStats is the per-year cross tabulation of students.
type EnrollmentYearStats struct {
	EnrollmentYear int            `json:"enrollment_year"`
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ByGender       map[string]int `json:"by_gender"`
}

// Breakdown is a keyed count map with the total computed from its values.
type Breakdown struct {
	Buckets map[string]int
	Total   int
	Rows    []CountRow
}
