package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type fakeStudentRepo struct {
	statusRows []models.CountRow
	classRows  []models.CountRow
	genderRows []models.CountRow
	yearRows   []models.EnrollmentRow
	students   map[string]models.Student
	listTotal  int

	classErr   error
	err        error
	lastFilter models.StudentFilter
	lastSearch models.StudentSearch
	calls      int32
}

func (f *fakeStudentRepo) CountActive(context.Context) (int, error) {
	return f.listTotal, f.err
}

func (f *fakeStudentRepo) StatsByStatus(context.Context) ([]models.CountRow, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.statusRows, f.err
}

func (f *fakeStudentRepo) StatsByClass(context.Context) ([]models.CountRow, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.classErr != nil {
		return nil, f.classErr
	}
	return f.classRows, f.err
}

func (f *fakeStudentRepo) StatsByGender(context.Context) ([]models.CountRow, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.genderRows, f.err
}

func (f *fakeStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.StudentSummary, int, error) {
	f.lastFilter = filter
	return []models.StudentSummary{}, f.listTotal, f.err
}

func (f *fakeStudentRepo) Search(_ context.Context, search models.StudentSearch) ([]models.StudentSummary, error) {
	f.lastSearch = search
	return []models.StudentSummary{{NIS: "2024001", Name: "Ani"}}, f.err
}

func (f *fakeStudentRepo) FindByNIS(_ context.Context, nis string) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.students[nis]; ok {
		return &s, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "")
}

func (f *fakeStudentRepo) StatsByEnrollmentYear(context.Context) ([]models.EnrollmentRow, error) {
	return f.yearRows, f.err
}

func TestStudentServiceStats(t *testing.T) {
	repo := &fakeStudentRepo{
		statusRows: []models.CountRow{{Key: "Active", Count: 50}, {Key: "Alumni", Count: 30}},
		classRows:  []models.CountRow{{Key: "X-A", Count: 26}, {Key: "X-B", Count: 24}},
		genderRows: []models.CountRow{{Key: "F", Count: 50}},
	}
	svc := NewStudentService(repo, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), repo.calls)
	assert.Equal(t, 80, stats.TotalAll)
	assert.Equal(t, map[string]int{"Active": 50, "Alumni": 30}, stats.StatsByStatus)
	assert.Equal(t, 24, stats.StatsByClass["X-B"])
	assert.Equal(t, map[string]int{"F": 50, "M": 0}, stats.StatsByGender)
}

func TestStudentServiceStatsPartialFailureFailsRequest(t *testing.T) {
	repo := &fakeStudentRepo{
		statusRows: []models.CountRow{{Key: "Active", Count: 1}},
		classErr:   appErrors.WrapAs(appErrors.ErrTimeout, errors.New("deadline"), ""),
	}
	svc := NewStudentService(repo, nil)

	stats, err := svc.Stats(context.Background())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, appErrors.ErrTimeout)
}

func TestStudentServiceListActiveDefaults(t *testing.T) {
	repo := &fakeStudentRepo{listTotal: 25}
	svc := NewStudentService(repo, nil)

	list, err := svc.ListActive(context.Background(), models.PageRequest{Page: 1, Limit: 10}, " X-A ")
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatus("Active"), repo.lastFilter.Status)
	assert.Equal(t, "X-A", repo.lastFilter.Class)
	assert.Equal(t, "X-A", list.Filter.Class)
	assert.Equal(t, 3, list.Pagination.TotalPages)
}

func TestStudentServiceListByStatus(t *testing.T) {
	repo := &fakeStudentRepo{listTotal: 4}
	svc := NewStudentService(repo, nil)

	list, err := svc.ListByStatus(context.Background(), "", models.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusActive, list.Filter.Status)

	_, err = svc.ListByStatus(context.Background(), "Alumni", models.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusAlumni, repo.lastFilter.Status)
	assert.Empty(t, repo.lastFilter.Class)

	_, err = svc.ListByStatus(context.Background(), "alumni", models.PageRequest{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, appErrors.ErrInvalidArgument)
}

func TestStudentServiceSearch(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := NewStudentService(repo, nil)

	_, err := svc.Search(context.Background(), "x", "Alumni")
	assert.ErrorIs(t, err, appErrors.ErrInvalidArgument)

	result, err := svc.Search(context.Background(), "ani", "")
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatus("Active"), repo.lastSearch.Status)
	assert.Equal(t, 1, result.TotalFound)
}

func TestStudentServiceDetail(t *testing.T) {
	repo := &fakeStudentRepo{students: map[string]models.Student{"2024001": {NIS: "2024001", Name: "Ani"}}}
	svc := NewStudentService(repo, nil)

	detail, err := svc.Detail(context.Background(), "2024001")
	require.NoError(t, err)
	assert.Equal(t, "Ani", detail.Student.Name)

	_, err = svc.Detail(context.Background(), "9999")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestStudentServiceByEnrollmentYear(t *testing.T) {
	repo := &fakeStudentRepo{yearRows: []models.EnrollmentRow{
		{Year: 2022, Status: "Alumni", Gender: "M", Count: 2},
		{Year: 2024, Status: "Active", Gender: "F", Count: 3},
	}}
	svc := NewStudentService(repo, nil)

	result, err := svc.ByEnrollmentYear(context.Background())
	require.NoError(t, err)
	require.Len(t, result.StatsByYear, 2)
	assert.Equal(t, 2024, result.StatsByYear[0].EnrollmentYear)
	assert.Equal(t, 0, result.StatsByYear[0].ByGender["M"])
}
