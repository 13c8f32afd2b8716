package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/school-dashboard-api/internal/models"
)

func TestBucketsFromRowsTotalsBreakdown(t *testing.T) {
	b := BucketsFromRows([]models.CountRow{{Key: "active", Count: 20}, {Key: "inactive", Count: 5}})
	assert.Equal(t, map[string]int{"active": 20, "inactive": 5}, b.Buckets)
	assert.Equal(t, 25, b.Total)

	sum := 0
	for _, v := range b.Buckets {
		sum += v
	}
	assert.Equal(t, b.Total, sum)
}

func TestBucketsFromRowsEmpty(t *testing.T) {
	b := BucketsFromRows(nil)
	assert.Empty(t, b.Buckets)
	assert.NotNil(t, b.Rows)
	assert.Zero(t, b.Total)
}

func TestDenseFill(t *testing.T) {
	got := DenseFill(map[string]int{"M": 3}, "M", "F")
	assert.Equal(t, map[string]int{"M": 3, "F": 0}, got)
}

func TestDenseMonths(t *testing.T) {
	months, total := DenseMonths([]models.MonthRow{{Month: 2, Count: 4}, {Month: 11, Count: 1}, {Month: 13, Count: 9}})

	assert.Len(t, months, 12)
	for i, m := range months {
		assert.Equal(t, i+1, m.Month)
		assert.Equal(t, MonthNames[i], m.MonthName)
	}
	assert.Equal(t, "Januari", months[0].MonthName)
	assert.Equal(t, "Desember", months[11].MonthName)
	assert.Equal(t, 4, months[1].Count)
	assert.Equal(t, 1, months[10].Count)
	assert.Equal(t, 0, months[0].Count)
	assert.Equal(t, 5, total)
}

func TestCrossTabEnrollment(t *testing.T) {
	stats := CrossTabEnrollment([]models.EnrollmentRow{
		{Year: 2023, Status: "Alumni", Gender: "F", Count: 4},
		{Year: 2024, Status: "Active", Gender: "M", Count: 10},
		{Year: 2024, Status: "Active", Gender: "F", Count: 12},
		{Year: 2024, Status: "Transferred", Gender: "M", Count: 1},
	})

	if assert.Len(t, stats, 2) {
		assert.Equal(t, 2024, stats[0].EnrollmentYear)
		assert.Equal(t, 2023, stats[1].EnrollmentYear)
	}

	latest := stats[0]
	assert.Equal(t, 23, latest.Total)
	assert.Equal(t, 22, latest.ByStatus["Active"])
	assert.Equal(t, 0, latest.ByStatus["DroppedOut"])
	assert.Len(t, latest.ByStatus, 5)
	assert.Equal(t, map[string]int{"M": 11, "F": 12}, latest.ByGender)

	for _, year := range stats {
		statusSum, genderSum := 0, 0
		for _, v := range year.ByStatus {
			statusSum += v
		}
		for _, v := range year.ByGender {
			genderSum += v
		}
		assert.Equal(t, year.Total, statusSum)
		assert.Equal(t, year.Total, genderSum)
	}
}
