package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type fakeTeacherRepo struct {
	active     []models.Teacher
	statusRows []models.CountRow
	monthRows  []models.MonthRow
	err        error

	lastSearch models.TeacherSearch
	lastYear   int
	searched   bool
}

func newFakeTeacherRepo(activeCount int) *fakeTeacherRepo {
	repo := &fakeTeacherRepo{}
	for i := 1; i <= activeCount; i++ {
		repo.active = append(repo.active, models.Teacher{ID: int64(i), Name: fmt.Sprintf("Teacher %02d", i), Status: models.TeacherStatusActive})
	}
	return repo
}

func (f *fakeTeacherRepo) CountActive(context.Context) (int, error) {
	return len(f.active), f.err
}

func (f *fakeTeacherRepo) StatsByStatus(context.Context) ([]models.CountRow, error) {
	return f.statusRows, f.err
}

func (f *fakeTeacherRepo) ListActive(_ context.Context, req models.PageRequest) ([]models.Teacher, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	start := req.Offset()
	if start > len(f.active) {
		start = len(f.active)
	}
	end := start + req.Limit
	if end > len(f.active) {
		end = len(f.active)
	}
	return f.active[start:end], len(f.active), nil
}

func (f *fakeTeacherRepo) Search(_ context.Context, search models.TeacherSearch) ([]models.Teacher, error) {
	f.searched = true
	f.lastSearch = search
	return f.active, f.err
}

func (f *fakeTeacherRepo) FindByID(_ context.Context, id int64) (*models.Teacher, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.active {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "")
}

func (f *fakeTeacherRepo) CountByMonth(_ context.Context, year int) ([]models.MonthRow, error) {
	f.lastYear = year
	return f.monthRows, f.err
}

func TestTeacherServiceListActiveScenarios(t *testing.T) {
	svc := NewTeacherService(newFakeTeacherRepo(25), nil)

	cases := []struct {
		page    int
		rows    int
		hasNext bool
		hasPrev bool
	}{
		{page: 1, rows: 10, hasNext: true, hasPrev: false},
		{page: 3, rows: 5, hasNext: false, hasPrev: true},
		{page: 10, rows: 0, hasNext: false, hasPrev: true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("page %d", tc.page), func(t *testing.T) {
			list, err := svc.ListActive(context.Background(), models.PageRequest{Page: tc.page, Limit: 10})
			require.NoError(t, err)
			assert.Len(t, list.Teachers, tc.rows)
			assert.Equal(t, 3, list.Pagination.TotalPages)
			assert.Equal(t, 25, list.Pagination.TotalData)
			assert.Equal(t, tc.hasNext, list.Pagination.HasNext)
			assert.Equal(t, tc.hasPrev, list.Pagination.HasPrev)
			assert.LessOrEqual(t, len(list.Teachers), list.Pagination.PerPage)
		})
	}
}

func TestTeacherServiceListActiveStoreFailure(t *testing.T) {
	repo := newFakeTeacherRepo(0)
	repo.err = appErrors.WrapAs(appErrors.ErrDataUnavailable, errors.New("connection refused"), "")
	svc := NewTeacherService(repo, nil)

	_, err := svc.ListActive(context.Background(), models.PageRequest{Page: 1, Limit: 10})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "DATA_UNAVAILABLE", appErr.Code)
	assert.Equal(t, "failed to fetch active teacher list", appErr.Message)
	assert.Equal(t, "connection refused", appErr.Detail())
}

func TestTeacherServiceStatsTotalsBreakdown(t *testing.T) {
	repo := newFakeTeacherRepo(0)
	repo.statusRows = []models.CountRow{{Key: "active", Count: 18}, {Key: "inactive", Count: 4}}
	svc := NewTeacherService(repo, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 22, stats.TotalAll)
	assert.Equal(t, 18, stats.StatsByStatus["active"])
	assert.Len(t, stats.Detail, 2)
}

func TestTeacherServiceSearchShortQuery(t *testing.T) {
	repo := newFakeTeacherRepo(3)
	svc := NewTeacherService(repo, nil)

	for _, status := range []string{"", "active", "inactive", "bogus"} {
		_, err := svc.Search(context.Background(), " a ", status)
		assert.ErrorIs(t, err, appErrors.ErrInvalidArgument)
	}
	assert.False(t, repo.searched)
}

func TestTeacherServiceSearchDefaultsToActive(t *testing.T) {
	repo := newFakeTeacherRepo(3)
	svc := NewTeacherService(repo, nil)

	result, err := svc.Search(context.Background(), "  sari ", "")
	require.NoError(t, err)
	assert.Equal(t, models.TeacherSearch{Query: "sari", Status: "active"}, repo.lastSearch)
	assert.Equal(t, 3, result.TotalFound)
	assert.Equal(t, "sari", result.Query)
}

func TestTeacherServiceByMonth(t *testing.T) {
	repo := newFakeTeacherRepo(0)
	repo.monthRows = []models.MonthRow{{Month: 3, Count: 2}}
	svc := NewTeacherService(repo, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	series, err := svc.ByMonth(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2025, repo.lastYear)
	assert.Equal(t, 2025, series.Year)
	assert.Len(t, series.Months, 12)
	assert.Equal(t, 2, series.Months[2].Count)
	assert.Equal(t, "Maret", series.Months[2].MonthName)
	assert.Equal(t, 2, series.Total)

	_, err = svc.ByMonth(context.Background(), "twenty")
	assert.ErrorIs(t, err, appErrors.ErrInvalidArgument)
}

func TestTeacherServiceDetail(t *testing.T) {
	svc := NewTeacherService(newFakeTeacherRepo(2), nil)

	detail, err := svc.Detail(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Teacher.ID)

	_, err = svc.Detail(context.Background(), "404")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "teacher not found", appErrors.FromError(err).Message)

	_, err = svc.Detail(context.Background(), "abc")
	assert.ErrorIs(t, err, appErrors.ErrInvalidArgument)
}
