package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

func studentRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows(studentSummaryColumns)
	for i := 0; i < n; i++ {
		rows.AddRow("2024001", "Siswa", "X-A", "F", time.Date(2008, 5, 1, 0, 0, 0, 0, time.UTC), "Ibu", nil, "Active", 2024)
	}
	return rows
}

func TestStudentRepositoryCountActive(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	repo := NewStudentRepository(store)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE status = $1")).
		WithArgs("Active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))

	total, err := repo.CountActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, total)
}

func TestStudentRepositoryBreakdowns(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	repo := NewStudentRepository(store)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE status = $1 GROUP BY class")).
		WithArgs("Active").
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).AddRow("X-A", 30).AddRow("X-B", 28))
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE status = $1 GROUP BY gender")).
		WithArgs("Active").
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).AddRow("F", 31).AddRow("M", 27))

	byClass, err := repo.StatsByClass(context.Background())
	require.NoError(t, err)
	assert.Len(t, byClass, 2)

	byGender, err := repo.StatsByGender(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CountRow{Key: "M", Count: 27}, byGender[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListWithClass(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	mock.MatchExpectationsInOrder(false)
	repo := NewStudentRepository(store)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE (status = $1 AND class = $2) ORDER BY name ASC LIMIT 10 OFFSET 0")).
		WithArgs("Active", "X-A").
		WillReturnRows(studentRows(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE (status = $1 AND class = $2)")).
		WithArgs("Active", "X-A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	list, total, err := repo.List(context.Background(), models.StudentFilter{
		Status: models.StudentStatusActive,
		Class:  "X-A",
		Page:   models.PageRequest{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByStatus(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	mock.MatchExpectationsInOrder(false)
	repo := NewStudentRepository(store)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE (status = $1) ORDER BY name ASC LIMIT 5 OFFSET 5")).
		WithArgs("Alumni").
		WillReturnRows(studentRows(0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE (status = $1)")).
		WithArgs("Alumni").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	list, total, err := repo.List(context.Background(), models.StudentFilter{
		Status: models.StudentStatusAlumni,
		Page:   models.PageRequest{Page: 2, Limit: 5},
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.Equal(t, 4, total)
}

func TestStudentRepositorySearch(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	repo := NewStudentRepository(store)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND (name ILIKE $2 OR nis ILIKE $3 OR parent_name ILIKE $4) ORDER BY name ASC LIMIT 20")).
		WithArgs("Active", "%2024%", "%2024%", "%2024%").
		WillReturnRows(studentRows(1))

	list, err := repo.Search(context.Background(), models.StudentSearch{Query: "2024", Status: models.StudentStatusActive})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStudentRepositoryFindByNIS(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	repo := NewStudentRepository(store)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE nis = $1")).
		WithArgs("2024001").
		WillReturnRows(sqlmock.NewRows(studentDetailColumns).AddRow(
			"2024001", "Siswa", "X-A", "F", now, "Bandung", "Jl. Merdeka", "Ibu", "Guru",
			nil, nil, "Islam", "Active", 2024, now, now,
		))
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE nis = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(studentDetailColumns))

	student, err := repo.FindByNIS(context.Background(), "2024001")
	require.NoError(t, err)
	assert.Equal(t, "Bandung", *student.BirthPlace)
	assert.Equal(t, 2024, *student.EnrollmentYear)

	_, err = repo.FindByNIS(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestStudentRepositoryStatsByEnrollmentYear(t *testing.T) {
	store, mock, cleanup := newStoreMock(t, StoreOptions{})
	defer cleanup()
	repo := NewStudentRepository(store)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY enrollment_year, status, gender")).
		WillReturnRows(sqlmock.NewRows([]string{"enrollment_year", "status", "gender", "count"}).
			AddRow(2024, "Active", "M", 10).
			AddRow(2024, "Active", "F", 12).
			AddRow(2023, "Alumni", "F", 4))

	rows, err := repo.StatsByEnrollmentYear(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, models.EnrollmentRow{Year: 2023, Status: "Alumni", Gender: "F", Count: 4}, rows[2])
}
