package service

import (
	"sort"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

// MonthNames are the Indonesian month names used in monthly series.
var MonthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// BucketsFromRows folds grouped rows into a keyed map. The total is the sum of
// the buckets, so it always matches the breakdown.
func BucketsFromRows(rows []models.CountRow) models.Breakdown {
	out := models.Breakdown{Buckets: make(map[string]int, len(rows)), Rows: rows}
	if out.Rows == nil {
		out.Rows = []models.CountRow{}
	}
	for _, row := range rows {
		out.Buckets[row.Key] += row.Count
		out.Total += row.Count
	}
	return out
}

// DenseFill adds every key missing from buckets with a zero count.
func DenseFill(buckets map[string]int, keys ...string) map[string]int {
	if buckets == nil {
		buckets = make(map[string]int, len(keys))
	}
	for _, key := range keys {
		if _, ok := buckets[key]; !ok {
			buckets[key] = 0
		}
	}
	return buckets
}

// DenseMonths expands sparse month rows into twelve ordered entries. Months
// outside 1..12 are dropped.
func DenseMonths(rows []models.MonthRow) ([]models.MonthCount, int) {
	months := make([]models.MonthCount, 12)
	for i := range months {
		months[i] = models.MonthCount{Month: i + 1, MonthName: MonthNames[i]}
	}
	total := 0
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		months[row.Month-1].Count += row.Count
		total += row.Count
	}
	return months, total
}

// CrossTabEnrollment folds (year, status, gender) rows into one entry per year,
// newest first, with every student status and gender code present.
func CrossTabEnrollment(rows []models.EnrollmentRow) []models.EnrollmentYearStats {
	byYear := make(map[int]*models.EnrollmentYearStats)
	for _, row := range rows {
		stats, ok := byYear[row.Year]
		if !ok {
			stats = &models.EnrollmentYearStats{
				EnrollmentYear: row.Year,
				ByStatus:       DenseFill(nil, studentStatusKeys()...),
				ByGender:       DenseFill(nil, models.StudentGenders()...),
			}
			byYear[row.Year] = stats
		}
		stats.Total += row.Count
		stats.ByStatus[row.Status] += row.Count
		stats.ByGender[row.Gender] += row.Count
	}

	out := make([]models.EnrollmentYearStats, 0, len(byYear))
	for _, stats := range byYear {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrollmentYear > out[j].EnrollmentYear })
	return out
}

func teacherStatusKeys() []string {
	statuses := models.TeacherStatuses()
	keys := make([]string, len(statuses))
	for i, s := range statuses {
		keys[i] = string(s)
	}
	return keys
}

func studentStatusKeys() []string {
	statuses := models.StudentStatuses()
	keys := make([]string, len(statuses))
	for i, s := range statuses {
		keys[i] = string(s)
	}
	return keys
}
